package fault

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/shopapp/pkg/logger"
	"github.com/shashiranjanraj/shopapp/pkg/metrics"
)

// Normalizer maps faults to client-visible responses.
type Normalizer struct {
	// EntityAwareMalformedID reports "<Kind> not Found" for malformed ids
	// instead of the fixed "Product not Found".
	EntityAwareMalformedID bool
}

// Classify returns the status and message for err.
func (n Normalizer) Classify(err error) (int, string) {
	switch f := Of(err).(type) {
	case *ValidationFailed:
		return http.StatusBadRequest, f.Message()
	case *MalformedID:
		if n.EntityAwareMalformedID && f.Kind != "" {
			return http.StatusNotFound, f.Kind + " not Found"
		}
		return http.StatusNotFound, MsgMalformedID
	case *NotFound:
		return f.StatusCode(), f.PublicMessage()
	case *Status:
		code, msg := f.StatusCode(), f.PublicMessage()
		if code < 400 || code > 599 {
			code = http.StatusInternalServerError
		}
		if msg == "" {
			msg = http.StatusText(code)
		}
		return code, msg
	case *Unclassified:
		return http.StatusInternalServerError, MsgUnexpected
	default:
		panic(fmt.Sprintf("fault: unhandled variant %T", f))
	}
}

// HandleError classifies err and writes the terminal plain-text response.
// Unclassified faults are logged with the request-scoped logger; their
// detail never reaches the response body.
func (n Normalizer) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := n.Classify(err)

	log := logger.WithCtx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "status", status, "error", err.Error(), "method", r.Method, "path", r.URL.Path)
	} else {
		log.Debug("request rejected", "status", status, "error", err.Error())
	}

	metrics.RecordFault(status)
	Write(w, status, msg)
}

// Write emits exactly (status, message) as plain text.
func Write(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, msg)
}
