package webutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"skymentor/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody decodes the request body into dst, rejecting unknown
// fields.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}

// DecodeAndValidate decodes the body into dst and runs struct validation,
// returning an error suitable for HandleError on failure.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "", model.ErrInvalidInput)
	}
	if err := Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationErrorResponse(validationErrors)
		}
		return err
	}
	return nil
}
