package validation

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
)

// BindAndValidate binds the JSON body into out and runs validation.
// Malformed JSON and failed rules both come back as *apperr.ValidationError;
// the caller decides how to render it.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return &apperr.ValidationError{Fields: []string{"body"}}
	}
	return Validate(v, out)
}

// Validate runs v over in and converts failures to *apperr.ValidationError.
func Validate(v *validatorv10.Validate, in interface{}) error {
	if err := v.Struct(in); err != nil {
		return &apperr.ValidationError{Fields: fieldNames(err)}
	}
	return nil
}

// fieldNames lists the failing fields by json path, e.g. "items[0].name".
func fieldNames(err error) []string {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		name := fe.Namespace()
		// drop the top-level struct name
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
