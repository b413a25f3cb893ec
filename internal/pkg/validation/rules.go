package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Email validation pattern: local part, "@", domain labels and a top-level segment of 2+ letters
	EmailPattern = `(?i)^[a-z0-9._%+\-]+@[a-z0-9\-]+(\.[a-z0-9\-]+)*\.[a-z]{2,}$`

	// Student identifier pattern - 8 digits
	IdentifierPattern = `^\d{8}$`

	// Department code pattern - exactly 6 ASCII letters or digits
	DepartmentCodePattern = `^[A-Za-z0-9]{6}$`

	// Alphanumeric pattern for department names
	AlphanumericPattern = `^[\p{L}\p{N}]+$`

	// Letters only, any script
	LettersPattern = `^\p{L}+$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 50

	DepartmentNameMinLength = 3
	DepartmentNameMaxLength = 100

	LectureNameMinLength = 5
	LectureNameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email          *regexp.Regexp
	Identifier     *regexp.Regexp
	DepartmentCode *regexp.Regexp
	Alphanumeric   *regexp.Regexp
	Letters        *regexp.Regexp
}{
	Email:          regexp.MustCompile(EmailPattern),
	Identifier:     regexp.MustCompile(IdentifierPattern),
	DepartmentCode: regexp.MustCompile(DepartmentCodePattern),
	Alphanumeric:   regexp.MustCompile(AlphanumericPattern),
	Letters:        regexp.MustCompile(LettersPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length in runes
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in runes
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsValidPersonName reports whether name is letters only and within the given rune bounds.
// Non-positive bounds fall back to NameMinLength and NameMaxLength.
func IsValidPersonName(name string, minLen, maxLen int) bool {
	if minLen <= 0 {
		minLen = NameMinLength
	}
	if maxLen <= 0 {
		maxLen = NameMaxLength
	}
	return NewStringValidation(name).
		WithMinLength(minLen).
		WithMaxLength(maxLen).
		WithPattern(CompiledPatterns.Letters).
		Validate()
}

// IsValidStudentNumber checks the 8 digit student number format
func IsValidStudentNumber(number string) bool {
	return NewStringValidation(number).WithPattern(CompiledPatterns.Identifier).Validate()
}

// IsValidEmail checks the local@domain.tld shape
func IsValidEmail(email string) bool {
	return NewStringValidation(email).WithMaxLength(254).WithPattern(CompiledPatterns.Email).Validate()
}

// IsValidDepartmentCode checks for exactly 6 alphanumeric characters
func IsValidDepartmentCode(code string) bool {
	return NewStringValidation(code).WithPattern(CompiledPatterns.DepartmentCode).Validate()
}

// IsValidDepartmentName checks for 3 to 100 letters or digits
func IsValidDepartmentName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(DepartmentNameMinLength).
		WithMaxLength(DepartmentNameMaxLength).
		WithPattern(CompiledPatterns.Alphanumeric).
		Validate()
}

// IsValidLectureName checks the lecture name length. Any characters are allowed.
func IsValidLectureName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(LectureNameMinLength).
		WithMaxLength(LectureNameMaxLength).
		Validate()
}
