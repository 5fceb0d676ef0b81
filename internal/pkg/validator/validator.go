package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Membership tier validation
	validate.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		tier := fl.Field().String()
		validTiers := []string{"bronze", "silver", "gold", "platinum", ""}
		for _, t := range validTiers {
			if tier == t {
				return true
			}
		}
		return false
	})

	// Member occupation type validation
	validate.RegisterValidation("member_type", func(fl validator.FieldLevel) bool {
		mt := fl.Field().String()
		validTypes := []string{"farm", "company_employee", "veterinarian", "livestock_shop", "government", "other"}
		for _, t := range validTypes {
			if mt == t {
				return true
			}
		}
		return false
	})

	// Ledger source category validation
	validate.RegisterValidation("ledger_source", func(fl validator.FieldLevel) bool {
		source := fl.Field().String()
		validSources := []string{"daily_checkin", "content", "quiz", "survey", "receipt", "game", "mission", "reward", "registration"}
		for _, s := range validSources {
			if source == s {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "tier":
			errors[field] = "Invalid tier. Must be: bronze, silver, gold, or platinum"
		case "member_type":
			errors[field] = "Invalid member type"
		case "ledger_source":
			errors[field] = "Invalid ledger source category"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
