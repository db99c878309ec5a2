// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strconv"
	"strings"

	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their JSON names and knows
// the post type and brewing method enums.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	_ = validate.RegisterValidation("posttype", func(fl validator.FieldLevel) bool {
		return entity.PostType(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("brewmethod", func(fl validator.FieldLevel) bool {
		return entity.BrewingMethod(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("maxbytes", maxBytes)

	return &CustomValidator{validate: validate}
}

// Validate checks i and returns a *domainerrors.ValidationError listing every failing field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "body",
			Rule:    "invalid",
			Message: "request body is not a valid object",
		})
	}

	fields := make([]domainerrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

// maxBytes bounds the encoded length of a string, e.g. bcrypt's 72-byte input limit.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}

// fieldPath drops the root struct name: "CreatePostInput.recipe.title" -> "recipe.title".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}

		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}

		return "must be at most " + fe.Param()
	case "maxbytes":
		return "must be at most " + fe.Param() + " bytes"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "posttype":
		return "must be one of: Recipe, Coffee review, Cafe review"
	case "brewmethod":
		return "must be one of: Pour Over, Aeropress, French Press, Espresso, Cold Brew, Siphon"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
