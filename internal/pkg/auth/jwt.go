package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/studentrecords/internal/app/models/dto/enums"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// ErrInvalidFormat is returned for a malformed Authorization header
var ErrInvalidFormat = errors.New("invalid token format")

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content
type Claims struct {
	Role enums.RoleType `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an access token for subject carrying role
func (s *JWTService) GenerateToken(subject string, role enums.RoleType) (token string, expiresIn int, err error) {
	if subject == "" {
		return "", 0, fmt.Errorf("%w: subject is required", apperrors.ErrValidationFailed)
	}
	if !role.IsValid() {
		return "", 0, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create access token: %w", err)
	}
	return token, int(s.config.AccessTokenExp.Seconds()), nil
}

// ValidateToken parses and verifies a token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithIssuer(s.config.TokenIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrTokenInvalid
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", ErrInvalidFormat
		}
		return token, nil
	}

	// A bare token is accepted as well
	if strings.Count(authHeader, ".") == 2 {
		return authHeader, nil
	}
	return "", ErrInvalidFormat
}

// ValidateAndExtractClaims validates and extracts claims from a token string
func (s *JWTService) ValidateAndExtractClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" || !claims.Role.IsValid() {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}
