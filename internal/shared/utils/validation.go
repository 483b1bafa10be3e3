package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxJSONSize    = 64 * 1024 // request bodies
	MaxMessageSize = 4 * 1024  // one WebSocket input message
)

// Field limits
const (
	MaxTitleLength = 256
	MaxKeyLength   = 32
	MaxButton      = 7
	MaxDimension   = 1 << 15
)

// JSONSizeValidator validates JSON size limits
type JSONSizeValidator struct {
	maxSize int
}

// NewJSONSizeValidator creates a new validator with the specified max size
func NewJSONSizeValidator(maxSize int) *JSONSizeValidator {
	return &JSONSizeValidator{maxSize: maxSize}
}

// DefaultJSONValidator returns a validator with the default limit
func DefaultJSONValidator() *JSONSizeValidator {
	return NewJSONSizeValidator(MaxJSONSize)
}

// MaxSize returns the configured limit
func (v *JSONSizeValidator) MaxSize() int {
	return v.maxSize
}

// ValidateSize checks if the data size is within limits
func (v *JSONSizeValidator) ValidateSize(data []byte) error {
	if size := len(data); size > v.maxSize {
		return fmt.Errorf("JSON size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}

// ValidateJSON validates both size and JSON structure
func (v *JSONSizeValidator) ValidateJSON(data []byte) error {
	if err := v.ValidateSize(data); err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON")
	}
	return nil
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if value == "" {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") || !utf8.ValidString(value) {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateTitle validates a window title
func ValidateTitle(title string) error {
	return ValidateString(title, "title", 1, MaxTitleLength, true)
}

// ValidateDimensions validates window dimensions
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("size must not exceed %d, got %dx%d", MaxDimension, width, height)
	}
	return nil
}

// ValidatePosition validates a window origin; off-screen origins are allowed
func ValidatePosition(x, y int) error {
	if x < -MaxDimension || x > MaxDimension || y < -MaxDimension || y > MaxDimension {
		return fmt.Errorf("position (%d, %d) out of range", x, y)
	}
	return nil
}

// ValidateButton validates a pointer button index
func ValidateButton(button int) error {
	if button < 0 || button > MaxButton {
		return fmt.Errorf("button must be between 0 and %d, got %d", MaxButton, button)
	}
	return nil
}

// ValidateKey validates a key name such as "a", "Enter" or "ArrowLeft"
func ValidateKey(key string) error {
	return ValidateString(key, "key", 1, MaxKeyLength, true)
}
