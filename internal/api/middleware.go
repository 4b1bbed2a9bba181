package api

import (
	"log"
	"nearest-route-service/internal/platform/obs"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// responseRecorder remembers the status and body size a handler produced.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rec *responseRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *responseRecorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.size += n
	return n, err
}

// accessLog assigns every request an id, propagates it through the context
// for obs.Time, echoes it in X-Request-ID and writes one line per request.
// A client-supplied id is kept only when it parses as a UUID.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		began := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(obs.WithRequestID(r.Context(), id)))

		log.Printf(
			"req_id=%s %s %s status=%d size=%d took=%s",
			id, r.Method, r.URL.RequestURI(), rec.status, rec.size, time.Since(began).Round(time.Microsecond),
		)
	})
}
