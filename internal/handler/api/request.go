// Package api implements the JSON endpoint handlers for the storefront.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hearthside/vesta/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes and validates a request body. messages maps struct
// field names to the user-facing message for that field's validation
// failure, so the wire keeps its established texts.
func decodeJSON(r *http.Request, op string, dst interface{}, messages map[string]string) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid(op, "Invalid request body")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			if msg, ok := messages[fieldErrs[0].Field()]; ok {
				return domain.Invalid(op, msg)
			}
			return domain.Invalid(op, "Invalid value for "+fieldErrs[0].Field())
		}
		return domain.Invalid(op, "Invalid request body")
	}
	return nil
}
