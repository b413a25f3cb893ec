package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/repositories/memory"
	"github.com/yigit/studentrecords/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "studentrecords"
	cfg.Rules.NameMinLength = 2
	cfg.Rules.NameMaxLength = 50
	return cfg
}

func TestRulesFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.AllowDuplicateEmail = true

	rules := RulesFromConfig(cfg)
	assert.True(t, rules.AllowDuplicateEmail)
	assert.Equal(t, 2, rules.NameMinLength)
	assert.Equal(t, 50, rules.NameMaxLength)
}

func TestSeedDataAndRouter(t *testing.T) {
	cfg := testConfig()
	cfg.Seed.Enabled = true

	deps := BuildDependencies(cfg, memory.NewRepositories(), zerolog.Nop())
	SeedData(context.Background(), cfg, deps)

	student, err := deps.Repos.StudentRepository.GetByNumber(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, "CS1234", student.DepartmentCode)

	router, err := SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/students/12345678", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedDataDisabled(t *testing.T) {
	cfg := testConfig()
	deps := BuildDependencies(cfg, memory.NewRepositories(), zerolog.Nop())

	SeedData(context.Background(), cfg, deps)

	departments, err := deps.Repos.DepartmentRepository.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, departments)
}

func TestLoadSeed_MissingDirectory(t *testing.T) {
	_, err := LoadSeed(t.TempDir() + "/absent")
	assert.Error(t, err)
}
