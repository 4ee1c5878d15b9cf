package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"
)

const (
	greeting  = "Hello!\n"
	waitDelay = time.Second
	textPlain = "text/plain; charset=utf-8"
)

// headers a response cannot carry over from a request without breaking
// its own framing.
var framingHeaders = []string{
	"Connection",
	"Content-Length",
	"Http2-Settings",
	"Keep-Alive",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", textPlain)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, greeting)
}

func wait(w http.ResponseWriter, _ *http.Request) {
	startTime := time.Now()
	w.Header().Set("Content-Type", textPlain)
	startBody(w)
	timer := time.NewTimer(waitDelay)
	<-timer.C
	elapsed := time.Since(startTime)
	if _, err := fmt.Fprintf(w, "slept for %d millis\n", elapsed.Milliseconds()); err != nil {
		abortBody("wait", err)
	}
}

func echo(w http.ResponseWriter, r *http.Request) {
	startBody(w)
	if _, err := copyBody(w, r.Body); err != nil {
		abortBody("echo", err)
	}
}

func echoHeaders(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	for k := range h {
		delete(h, k)
	}
	for k, v := range r.Header {
		h[k] = append([]string(nil), v...)
	}
	for _, k := range framingHeaders {
		h.Del(k)
	}
	w.WriteHeader(http.StatusOK)
}

func echoTrailers(w http.ResponseWriter, r *http.Request) {
	startBody(w)
	if _, err := copyBody(io.Discard, r.Body); err != nil {
		abortBody("echo-trailers", err)
	}
	for k, vs := range r.Trailer {
		for _, v := range vs {
			w.Header().Add(http.TrailerPrefix+k, v)
		}
	}
	slog.Debug("echo-trailers", "trailers", len(r.Trailer))
}

func readFile(env *Env) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		contents, err := ReadTextFile(env.Preopens, sampleFile, env.Conf.MaxFileSize)
		w.Header().Set("Content-Type", textPlain)
		if err != nil {
			slog.Warn("read-file", "name", sampleFile, "error", err)
			span.RecordError(err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Error reading file: %s\n", err)
			return
		}
		span.SetAttributes(attribute.Int("http_fs_hello.file.size", len(contents)))
		env.Metrics.fileRead(r.Context(), len(contents))
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, contents)
	})
}

// startBody sends the status line and headers before the body is known.
// The request body stays readable afterwards.
func startBody(w http.ResponseWriter) {
	rc := http.NewResponseController(w)
	if err := rc.EnableFullDuplex(); err != nil {
		slog.Debug("full duplex", "error", err)
	}
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		slog.Debug("flush", "error", err)
	}
}

// abortBody gives up on a response whose headers are already sent. The
// server drops the connection so the client sees a truncated body.
func abortBody(route string, err error) {
	slog.Error("body", "route", route, "error", err)
	panic(http.ErrAbortHandler)
}

// copyBody calls io.Copy() and logs the length
func copyBody(output io.Writer, input io.Reader) (int64, error) {
	ilen, err := io.Copy(output, input)
	if err != nil {
		return ilen, err
	}
	slog.Debug("copy", "length", ilen)
	return ilen, nil
}

func handlerFunc(fn http.HandlerFunc) routeFactory {
	return func(*Env) http.Handler {
		return fn
	}
}

func init() {
	routeMap["/"] = handlerFunc(home)
	routeMap["/wait"] = handlerFunc(wait)
	routeMap["/echo"] = handlerFunc(echo)
	routeMap["/echo-headers"] = handlerFunc(echoHeaders)
	routeMap["/echo-trailers"] = handlerFunc(echoTrailers)
	routeMap["/read-file"] = readFile
}
