package httpx

import (
	"encoding/json"
	"net/http"

	"restaurant-pos/internal/domain"
)

type errorBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps the domain error taxonomy onto status codes. Unknown errors
// become opaque 500s so internals never leak to clients.
func Error(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		JSON(w, http.StatusNotFound, errorBody{Message: err.Error()})
	case domain.IsValidation(err), domain.IsDuplicate(err):
		JSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
	default:
		JSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
	}
}

func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Message: msg})
}

func Unauthorized(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusUnauthorized, errorBody{Message: msg})
}

func Forbidden(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusForbidden, errorBody{Message: msg})
}
