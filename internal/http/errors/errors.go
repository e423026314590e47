package errors

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// InternalError logs the underlying error with the request ID and
// returns a generic 500 to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logf(r, "ERROR", message, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// BadRequestError logs the underlying error and returns the client
// message with a 400.
func BadRequestError(w http.ResponseWriter, r *http.Request, err error, clientMessage string) {
	logf(r, "WARN", "bad request", err)
	http.Error(w, clientMessage, http.StatusBadRequest)
}

// ConflictError reports a rejected mutation (such as a drop that would
// overlap) with a 409.
func ConflictError(w http.ResponseWriter, r *http.Request, clientMessage string) {
	logf(r, "INFO", clientMessage, nil)
	http.Error(w, clientMessage, http.StatusConflict)
}

// LogError records an error without writing a response.
func LogError(r *http.Request, message string, err error) {
	logf(r, "ERROR", message, err)
}

// LogInfo records an informational message tagged with the request ID.
func LogInfo(r *http.Request, message string) {
	logf(r, "INFO", message, nil)
}

func logf(r *http.Request, level, message string, err error) {
	requestID := middleware.GetReqID(r.Context())
	switch {
	case requestID != "" && err != nil:
		log.Printf("[%s] RequestID=%s: %s: %v", level, requestID, message, err)
	case requestID != "":
		log.Printf("[%s] RequestID=%s: %s", level, requestID, message)
	case err != nil:
		log.Printf("[%s] %s: %v", level, message, err)
	default:
		log.Printf("[%s] %s", level, message)
	}
}
