package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// Size limits
const (
	MaxIDLength      = 128
	MaxTitleLength   = 256
	MaxMessageLength = 1024
	MaxPropsSize     = 64 * 1024 // 64KB - props bag handed to a view
	MaxPropsDepth    = 8
	MaxCoordinate    = 1 << 16
)

// SafeIDPattern allows alphanumeric, hyphens, underscores
var SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateTitle validates an optional window title override
func ValidateTitle(title string) error {
	return ValidateString(title, "title", 1, MaxTitleLength, false)
}

// ValidateMessage validates notification text
func ValidateMessage(message string) error {
	if err := ValidateString(message, "message", 1, MaxMessageLength, true); err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message must not be blank")
	}
	return nil
}

// ValidateCoordinate bounds a position component
func ValidateCoordinate(v int, fieldName string) error {
	if v < -MaxCoordinate || v > MaxCoordinate {
		return fmt.Errorf("%s out of range (±%d)", fieldName, MaxCoordinate)
	}
	return nil
}

// ValidateDimension checks a width or height
func ValidateDimension(v int, fieldName string) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if v > MaxCoordinate {
		return fmt.Errorf("%s must not exceed %d", fieldName, MaxCoordinate)
	}
	return nil
}

// ValidateProps checks the size and nesting of a props bag
func ValidateProps(props map[string]interface{}) error {
	if props == nil {
		return nil
	}
	data, err := sonic.Marshal(props)
	if err != nil {
		return fmt.Errorf("props are not serializable: %w", err)
	}
	if len(data) > MaxPropsSize {
		return fmt.Errorf("props size %d bytes exceeds maximum %d bytes", len(data), MaxPropsSize)
	}
	return checkDepth(props, 0, MaxPropsDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("props nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}
