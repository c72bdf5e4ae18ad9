package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

var traceIDs = utils.NewUUIDGenerator()

// withTraceID attaches a request logger carrying trace_id to the context and
// echoes the id in the response. A client-supplied X-Trace-ID is reused.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = traceIDs.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
