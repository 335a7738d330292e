package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	if err := validate.Struct(c.Server); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "server", "")...)
	}

	validationErrors = append(validationErrors, c.validateVectors()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *Config) validateVectors() ValidationErrors {
	var validationErrors ValidationErrors

	seenNames := make(map[string]bool)

	for i, v := range c.Vectors {
		if v == nil {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fmt.Sprintf("vector.%d", i),
				Message:   "vector must not be empty",
			})
			continue
		}

		itemName := v.Name
		if itemName == "" {
			itemName = fmt.Sprintf("vector[%d]", i)
		}
		prefix := fmt.Sprintf("vector.%d", i)

		if err := validate.Struct(v); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, prefix, itemName)...)
		}

		if v.Input != "" && v.InputHex != "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: prefix + ".input_hex",
				Message:   "only one of input or input_hex may be set",
			})
		} else if _, err := v.Bytes(); err != nil {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: prefix + ".input",
				Message:   err.Error(),
			})
		}

		if v.Name != "" && seenNames[v.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: prefix + ".name",
				Message:   fmt.Sprintf("duplicate vector name: %s", v.Name),
			})
		}
		seenNames[v.Name] = true
	}

	return validationErrors
}

func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because of RegisterTagNameFunc
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
