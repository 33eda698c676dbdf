package logging

import (
	"bytes"
	golog "log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type okHandler struct{}

func (okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(200)
}

func TestMakeAccessLogHandler(t *testing.T) {
	buff := &bytes.Buffer{}
	old := golog.Writer()
	golog.SetOutput(buff)
	defer golog.SetOutput(old)

	h := MakeAccessLogHandler(okHandler{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != 200 {
		t.Errorf("wrapped handler returned %d, want 200", w.Code)
	}
	if !strings.Contains(buff.String(), "/metrics") {
		t.Errorf("access log %q does not mention the requested resource", buff.String())
	}
}
