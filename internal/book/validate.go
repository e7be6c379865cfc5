package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "year" accepts integers that fit the books.year column.
	if err := v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		_, err := parseYear(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// validateFields checks the normalized form of f against the book field
// constraints.
func validateFields(f Fields) error {
	err := validate.Struct(f.normalized())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Field()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("Please provide a value for %q", field)
		case "year":
			message = fmt.Sprintf("Please provide a valid number for %q", field)
		default:
			message = fmt.Sprintf("%q is invalid", field)
		}

		out.Fields = append(out.Fields, FieldError{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: message,
		})
	}
	return out
}
