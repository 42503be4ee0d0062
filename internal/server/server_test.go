package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Port: 0})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := get(s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestIndexListsStyles(t *testing.T) {
	s := newTestServer(t)
	rec := get(s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"techno", "jungle", "drum&amp;bass", "7/8"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	rec := postForm(s, "/generate", url.Values{"measures": {"0"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero measures: status = %d", rec.Code)
	}

	rec = postForm(s, "/generate", url.Values{"measures": {"8"}, "swing": {"2.5"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad swing: status = %d", rec.Code)
	}

	rec = postForm(s, "/generate", url.Values{"measures": {"8"}, "time_signature": {"9/5"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad meter: status = %d", rec.Code)
	}
}

func TestGenerateFlow(t *testing.T) {
	s := newTestServer(t)

	rec := postForm(s, "/generate", url.Values{
		"style":    {"techno"},
		"measures": {"8"},
		"seed":     {"42"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	m := regexp.MustCompile(`/status/(\d+)`).FindStringSubmatch(rec.Body.String())
	if m == nil {
		t.Fatalf("no job id in response: %s", rec.Body.String())
	}
	jobID := m[1]

	// Small jobs finish quickly; poll the result page.
	deadline := time.Now().Add(10 * time.Second)
	var body string
	for time.Now().Before(deadline) {
		rec = get(s, "/result/"+jobID)
		body = rec.Body.String()
		if strings.Contains(body, "Download MIDI") || strings.Contains(body, "Something went wrong") {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if !strings.Contains(body, "Download MIDI") {
		t.Fatalf("job did not complete: %s", body)
	}
	if !strings.Contains(body, "Rhythm") {
		t.Errorf("result page missing track table: %s", body)
	}

	rec = get(s, "/download/"+jobID+"/midi")
	if rec.Code != http.StatusOK {
		t.Fatalf("download: status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "MThd") {
		t.Error("download is not a standard MIDI file")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/midi" {
		t.Errorf("content type = %q", ct)
	}
}

func TestUnknownJob(t *testing.T) {
	s := newTestServer(t)
	if rec := get(s, "/result/12345"); rec.Code != http.StatusNotFound {
		t.Errorf("result: status = %d", rec.Code)
	}
	if rec := get(s, "/download/12345/midi"); rec.Code != http.StatusNotFound {
		t.Errorf("download: status = %d", rec.Code)
	}
}
