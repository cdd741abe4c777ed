package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError turns a non-2xx response into an error carrying the message
// the server sent, so the CLI can show it as is.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	message := serverMessage(resp)
	if sentinel, ok := statusErrors[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", sentinel, message)
	}

	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), message)
}

// serverMessage prefers the "message" field of a JSON envelope and falls
// back to the raw body, then to the status text.
func serverMessage(resp *resty.Response) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}

	if body := strings.TrimSpace(string(resp.Body())); body != "" {
		return body
	}

	return http.StatusText(resp.StatusCode())
}
