package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                     http.StatusBadRequest,
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrEmailAlreadyExists:     http.StatusConflict,
	store.ErrRegistrationInProgress: http.StatusConflict,
	store.ErrNoUserWasFound:         http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrDecodingDocument: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse pairs a status with the plain-text body sent to the client.
type errorResponse struct {
	status  int
	message string
}

// routeErrors translates the status derived from an error into the response
// of one route. A 500 missing from the table answers "Server error", other
// statuses answer with http.StatusText.
type routeErrors map[int]errorResponse

var (
	registerErrors = routeErrors{
		http.StatusBadRequest: {http.StatusBadRequest, msgAllInputRequired},
		http.StatusConflict:   {http.StatusConflict, msgUserAlreadyExists},
	}

	// An unknown email on login is a client error, not a missing resource.
	loginErrors = routeErrors{
		http.StatusBadRequest:   {http.StatusBadRequest, msgSendAllData},
		http.StatusNotFound:     {http.StatusBadRequest, msgUserNotFound},
		http.StatusUnauthorized: {http.StatusUnauthorized, msgInvalidCredentials},
	}

	profileErrors = routeErrors{
		http.StatusNotFound: {http.StatusNotFound, msgUserNotFound},
		http.StatusConflict: {http.StatusConflict, msgEmailAlreadyInUse},
	}
)

// resolve maps err to the response of the route. Internal errors never leak
// their details.
func (m routeErrors) resolve(err error) errorResponse {
	status := statusFromError(err)

	if resp, ok := m[status]; ok {
		return resp
	}
	if status == http.StatusInternalServerError {
		return errorResponse{status: status, message: msgServerError}
	}
	return errorResponse{status: status, message: http.StatusText(status)}
}
