package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"

	// maxTraceIDLength fits a UUID, a W3C trace id and most vendor formats.
	maxTraceIDLength = 64
)

// withTraceID attaches a request-scoped logger carrying the trace id. A
// well-formed X-Trace-ID request header is reused, anything else is replaced
// by a generated id. The id is echoed in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !isValidTraceID(traceID) {
			traceID = utils.NewTraceID()
		}

		l := h.logger.WithTraceID(traceID)
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

// isValidTraceID accepts non-empty ids of at most maxTraceIDLength bytes made
// of ASCII letters, digits, '-', '_' and '.'.
func isValidTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
