package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"intervai/internal/models"
	"intervai/internal/utils"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const validatedRequestKey contextKey = "validated_request"

// request bodies larger than this are rejected
const maxBodyBytes = 1 << 20

// request models implement this interface
type Validator interface {
	Validate() error
}

// ErrorWriter renders a rejected request body. Routes with their own response contract supply one
// through ValidateRequestWith.
type ErrorWriter func(w http.ResponseWriter, status int, errResp models.ErrorResponse)

func writeErrorResponse(w http.ResponseWriter, status int, errResp models.ErrorResponse) {
	utils.JSON(w, status, errResp)
}

// ValidateRequest decodes the JSON body into a fresh T, runs its Validate method and stores the
// result in the request context for GetValidatedRequest.
func ValidateRequest[T Validator]() func(http.Handler) http.Handler {
	return ValidateRequestWith[T](writeErrorResponse)
}

// ValidateRequestWith is ValidateRequest with a custom rendering of decode and validation failures.
func ValidateRequestWith[T Validator](writeErr ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req T
			reqType := reflect.TypeOf(req)
			if reqType.Kind() == reflect.Ptr {
				req = reflect.New(reqType.Elem()).Interface().(T)
			} else {
				req = reflect.New(reqType).Interface().(T)
			}

			body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
			if err := json.NewDecoder(body).Decode(req); err != nil {
				code, message := "invalid_json", "Invalid JSON in request body"
				var tooLarge *http.MaxBytesError
				switch {
				case errors.Is(err, io.EOF):
					code, message = "empty_body", "Request body is required"
				case errors.As(err, &tooLarge):
					code, message = "body_too_large", "Request body is too large"
				}
				writeErr(w, http.StatusBadRequest, models.ErrorResponse{Code: code, Message: message})
				return
			}

			if err := req.Validate(); err != nil {
				var errResp *models.ErrorResponse
				if errors.As(err, &errResp) {
					writeErr(w, http.StatusBadRequest, *errResp)
				} else {
					writeErr(w, http.StatusBadRequest, models.ErrorResponse{
						Code:    "validation_error",
						Message: err.Error(),
					})
				}
				return
			}

			ctx := context.WithValue(r.Context(), validatedRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetValidatedRequest retrieves the validated request from context
func GetValidatedRequest[T any](r *http.Request) T {
	return r.Context().Value(validatedRequestKey).(T)
}
