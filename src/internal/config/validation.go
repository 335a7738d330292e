package config

import (
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/princess-rosella/spu-md5/src/internal/format"
)

var md5HexRegexp = regexp.MustCompile(`^[0-9a-f]{32}$`)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "hexadecimal":
		return "must be a hexadecimal string"
	case "md5_hex":
		return "must be 32 lowercase hexadecimal characters"
	case "output_template":
		return "must be a valid template using only {{hash}}, {{name}} and {{size}}"
	case "hostport_or_empty":
		return "must be in format 'host:port' or empty"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For vectors: the vector name
	FieldPath string // Dot-notation field path (e.g., "general.chunk_size", "vector.0.expected")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

// Details flattens the errors into a field path to message map.
func (ve ValidationErrors) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(ve))
	for _, err := range ve {
		details[err.FieldPath] = err.Message
	}
	return details
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("md5_hex", validateMD5Hex); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("output_template", validateOutputTemplate); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("hostport_or_empty", validateHostPortOrEmpty); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	return validate
}

// IsMD5Hex reports whether s is a lowercase 32-character hex digest.
func IsMD5Hex(s string) bool {
	return md5HexRegexp.MatchString(s)
}

func validateMD5Hex(fl validator.FieldLevel) bool {
	return IsMD5Hex(fl.Field().String())
}

func validateOutputTemplate(fl validator.FieldLevel) bool {
	_, err := format.New(fl.Field().String())
	return err == nil
}

// Custom validator: host:port format or empty
func validateHostPortOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.SplitHostPort(value)
	return err == nil
}
