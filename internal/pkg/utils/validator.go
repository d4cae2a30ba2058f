package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Rohit1301k/dareroom/internal/catalog"
	"github.com/Rohit1301k/dareroom/internal/model"
)

var (
	nicknameRegex = regexp.MustCompile(`^[\p{L}\p{N} _.-]{1,30}$`)
	roomCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{4,10}$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator provides validation methods
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, &ValidationError{
		Field:   field,
		Message: message,
	})
}

// Errors returns all validation errors
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

// HasErrors returns true if there are any validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "this field is required")
		return false
	}
	return true
}

// MaxLength checks if a string doesn't exceed maximum length
func (v *Validator) MaxLength(field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		v.AddError(field, fmt.Sprintf("must be at most %d characters", max))
		return false
	}
	return true
}

// ValidateNickname validates a player nickname
func (v *Validator) ValidateNickname(field, value string) bool {
	if !v.Required(field, value) {
		return false
	}
	if !nicknameRegex.MatchString(value) {
		v.AddError(field, "nickname may contain letters, digits, spaces, dots, underscores and hyphens, up to 30 characters")
		return false
	}
	return true
}

// ValidateRoomCode validates the shape of a room code. Codes are
// matched case-insensitively, so mixed case is accepted here.
func (v *Validator) ValidateRoomCode(field, value string) bool {
	if !v.Required(field, value) {
		return false
	}
	if !roomCodeRegex.MatchString(strings.TrimSpace(value)) {
		v.AddError(field, "room code must be 4-10 letters or digits")
		return false
	}
	return true
}

// ValidateRoomType validates the room type
func (v *Validator) ValidateRoomType(field, value string) bool {
	if !v.Required(field, value) {
		return false
	}
	if !model.ValidRoomType(model.RoomType(value)) {
		v.AddError(field, "room type must be one of partner, friends, group")
		return false
	}
	return true
}

// ValidateCategories validates a question category selection against
// the known catalog
func (v *Validator) ValidateCategories(field string, values []string) bool {
	if len(values) == 0 {
		v.AddError(field, "pick at least one category")
		return false
	}
	ok := true
	for _, cat := range values {
		if !catalog.Known(cat) {
			v.AddError(field, "unknown category: "+cat)
			ok = false
		}
	}
	return ok
}

// ValidateUUID validates a UUID string
func ValidateUUID(s string) bool {
	uuidRegex := regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	return uuidRegex.MatchString(s)
}

// SanitizeString removes null bytes and control characters
func SanitizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
