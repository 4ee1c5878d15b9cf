package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()
	var seen *statusWriter
	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*statusWriter)
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "short and stout")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("status %d", w.Code)
	}
	if seen.status != http.StatusTeapot || seen.written != int64(len("short and stout")) {
		t.Errorf("recorded status %d length %d", seen.status, seen.written)
	}
}

func TestAccessLogImplicitStatus(t *testing.T) {
	t.Parallel()
	var seen *statusWriter
	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*statusWriter)
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Error("flush", err)
		}
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if !w.Flushed {
		t.Error("not flushed")
	}
	if seen.status != http.StatusOK {
		t.Errorf("status %d", seen.status)
	}
}

func TestAccessLogAbort(t *testing.T) {
	t.Parallel()
	h := AccessLog(NewRouter(&Env{}))
	r := httptest.NewRequest("POST", "/echo", failingReader{})
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("recover %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), r)
	t.Error("not aborted")
}

func TestNewHandler(t *testing.T) {
	t.Parallel()
	for _, h2c := range []bool{false, true} {
		env := &Env{Conf: SrvConfig{SrvConfigBase: SrvConfigBase{H2C: h2c}}}
		w := httptest.NewRecorder()
		newHandler(env).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		if w.Code != http.StatusOK || w.Body.String() != greeting {
			t.Errorf("h2c=%v: status %d body %q", h2c, w.Code, w.Body.String())
		}
	}
}
