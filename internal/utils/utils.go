package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/voltedge/workshop-api/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadJSON decodes a single JSON object from the request body, rejecting
// oversized or trailing payloads.
func ReadJSON(w http.ResponseWriter, r *http.Request, data interface{}) error {
	maxBytes := 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON value")
	}
	return nil
}

// ValidateStruct runs the shared validator over a decoded payload.
func ValidateStruct(data interface{}) error {
	if err := validate.Struct(data); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("field %q failed validation on %q", f.Field(), f.Tag())
		}
		return err
	}
	return nil
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}

func errorJSON(w http.ResponseWriter, status int, err error) {
	resp := models.Response{
		Error:   true,
		Status:  "failed",
		Message: err.Error(),
	}
	_ = WriteJSON(w, status, resp)
}

// BadRequest reports a client error.
func BadRequest(w http.ResponseWriter, err error) {
	errorJSON(w, http.StatusBadRequest, err)
}

// NotFound reports a missing resource.
func NotFound(w http.ResponseWriter, err error) {
	errorJSON(w, http.StatusNotFound, err)
}

// Unauthorized reports a failed authentication.
func Unauthorized(w http.ResponseWriter, err error) {
	errorJSON(w, http.StatusUnauthorized, err)
}

// ServerError reports an internal failure.
func ServerError(w http.ResponseWriter, err error) {
	errorJSON(w, http.StatusInternalServerError, err)
}
