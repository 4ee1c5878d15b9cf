package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// statusWriter remembers what was sent through an http.ResponseWriter.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(data []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(data)
	w.written += int64(n)
	return n, err
}

func (w *statusWriter) Flush() {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if err := http.NewResponseController(w.ResponseWriter).Flush(); err != nil {
		slog.Debug("flush", "error", err)
	}
}

// code is the status sent so far, 200 when the handler wrote nothing.
func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// AccessLog logs one line per request once the handler returns, including
// when it aborts the response.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		id := uuid.NewString()
		defer func() {
			rec := recover()
			slog.Info(
				"access-log", "id", id, "method", r.Method, "url", r.URL,
				"remote-addr", r.RemoteAddr,
				"proto", r.Proto,
				"user-agent", r.UserAgent(),
				"status", sw.code(),
				"length", sw.written,
				"aborted", rec != nil,
				"elapsed", time.Since(startTime),
			)
			if rec != nil {
				panic(rec)
			}
		}()
		next.ServeHTTP(sw, r)
	})
}
