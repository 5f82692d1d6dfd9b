package controllers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// firstValidationError turns the first violation into a client message.
func firstValidationError(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
		}
		return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
	}
	return "Invalid request"
}
