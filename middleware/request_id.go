package middleware

import (
	"log"
	"net/http"
	"time"

	"slackrelay/appctx"
	"slackrelay/core"
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// RequestIDMiddleware tags every request with an id, reusing a valid inbound X-Request-ID, and logs its outcome
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A well-formed upstream id is kept
		requestID := r.Header.Get("X-Request-ID")
		if !core.IsValidID(requestID) {
			requestID = core.NewID("req")
		}
		start := time.Now()

		w.Header().Set("X-Request-ID", requestID)
		recorder := newStatusRecorder(w)

		next.ServeHTTP(recorder, r.WithContext(appctx.SetRequestID(r.Context(), requestID)))

		log.Printf("📋 [%s] %s %s -> %d (%s)", requestID, r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}
