package validation

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/snnyvrz/library-api/internal/model"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidBody      = "INVALID_REQUEST"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

var (
	egyptianPhone = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)

	passwordSpecials = "@$!%*?&"
	passwordAllowed  = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]+$`)
)

const passwordMinLength = 8

var registerOnce sync.Once

// Register installs the custom rules on gin's validator. It is safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		configure(v)
	})
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("isodate", isoDate)
	_ = v.RegisterValidation("egphone", egPhone)
	_ = v.RegisterValidation("password", strongPassword)
}

func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := model.ParseDate(s)
	return err == nil
}

func egPhone(fl validator.FieldLevel) bool {
	return egyptianPhone.MatchString(fl.Field().String())
}

// strongPassword wants at least one lower case letter, one upper case
// letter, one digit and one of passwordSpecials.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < passwordMinLength || !passwordAllowed.MatchString(s) {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func BindAndValidateJSON(c *gin.Context, dst any) bool {
	Register()

	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.AbortWithStatusJSON(http.StatusBadRequest, formatValidationErrors(verrs))
			return false
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidBody,
			Message: "invalid request body",
			Errors: []FieldError{
				{
					Field:   "",
					Rule:    "syntax",
					Message: err.Error(),
				},
			},
		})
		return false
	}

	return true
}

func formatValidationErrors(verrs validator.ValidationErrors) ErrorResponse {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		field := fieldPath(fe)
		fields = append(fields, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: buildMessage(field, fe),
		})
	}

	return ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors:  fields,
	}
}

// fieldPath drops the root struct name from the namespace, so nested
// fields read like "author.birthDate".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return toJSONFieldName(fe.Field())
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "isodate":
		return field + " must be a valid date in the format YYYY-MM-DD"
	case "egphone":
		return field + " must be a valid Egyptian phone number"
	case "password":
		return field + " must be at least 8 characters and contain an upper case letter, a lower case letter, a digit and a special character"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "gt":
		return field + " must be greater than " + fe.Param()
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
