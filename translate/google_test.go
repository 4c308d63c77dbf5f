package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string, attempts int) *GoogleClient {
	return NewGoogleClient(GoogleOptions{
		Endpoint:    url,
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		Timeout:     5 * time.Second,
	})
}

func TestGoogleClient_Request(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client") != "gtx" || q.Get("dt") != "t" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("sl") != "en" || q.Get("tl") != "vi" {
			t.Errorf("languages: sl=%q tl=%q", q.Get("sl"), q.Get("tl"))
		}
		if q.Get("q") != "Floor plan [ID:0] level 1" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if !slices.Contains(userAgents, r.Header.Get("User-Agent")) {
			t.Errorf("user agent %q not from the pool", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[[["Mặt bằng [ID:0] ","Floor plan [ID:0] ",null,null,3],["tầng 1","level 1",null,null,3]],null,"en"]`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL, 5).Translate(context.Background(), "Floor plan [ID:0] level 1", "en", "vi")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if got != "Mặt bằng [ID:0] tầng 1" {
		t.Errorf("got %q", got)
	}
}

func TestGoogleClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[[["Bếp","Kitchen"]]]`))
	}))
	defer srv.Close()

	var retries int
	c := newTestClient(srv.URL, 5)
	c.opts.OnLog = func(format string, args ...any) {
		if strings.Contains(format, "429") {
			retries++
		}
	}

	got, err := c.Translate(context.Background(), "Kitchen", "en", "vi")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if got != "Bếp" {
		t.Errorf("got %q", got)
	}
	if calls.Load() != 3 || retries != 2 {
		t.Errorf("calls = %d, retries logged = %d", calls.Load(), retries)
	}
}

func TestGoogleClient_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Translate(context.Background(), "Kitchen", "en", "vi")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("err = %v, want 429 StatusError", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestGoogleClient_OtherStatusGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5).Translate(context.Background(), "Kitchen", "en", "vi")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusForbidden {
		t.Fatalf("err = %v, want 403 StatusError", err)
	}
	if !strings.Contains(se.Error(), "forbidden") {
		t.Errorf("error text %q lacks body", se.Error())
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestGoogleClient_TransportErrorRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	var warnings int
	c := newTestClient(url, 2)
	c.opts.OnLog = func(format string, args ...any) {
		if strings.Contains(format, "request failed") {
			warnings++
		}
	}

	_, err := c.Translate(context.Background(), "Kitchen", "en", "vi")
	if err == nil || !strings.Contains(err.Error(), "giving up after 2 attempts") {
		t.Fatalf("err = %v", err)
	}
	if warnings != 2 {
		t.Errorf("warnings = %d, want 2", warnings)
	}
}

func TestGoogleClient_UnreadablePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>captcha</html>`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL, 5).Translate(context.Background(), "Kitchen", "en", "vi")
	if !errors.Is(err, ErrUnreadablePayload) || got != "" {
		t.Errorf("got %q, %v; want ErrUnreadablePayload", got, err)
	}
}

func TestGoogleClient_BackoffHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGoogleClient(GoogleOptions{Endpoint: srv.URL, BaseDelay: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Translate(ctx, "Kitchen", "en", "vi")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("backoff ignored the context")
	}
}

// ---------------------------------------------------------------------------
// End to end
// ---------------------------------------------------------------------------

func TestTranslator_WithGoogleClient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query().Get("q")
		if strings.Contains(q, "Danger") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`[[["` + strings.ToUpper(q) + `","` + q + `"]]]`))
	}))
	defer srv.Close()

	tr := New(newTestClient(srv.URL, 3), Options{})
	res := tr.TranslateBatch(context.Background(), []Job{
		{ID: "br", Text: `\P`, SourceLang: "en", TargetLang: "vi"},
		{ID: "bad", Text: "Danger zone", SourceLang: "en", TargetLang: "vi"},
		{ID: "ok", Text: `Floor plan\Plevel 1`, SourceLang: "en", TargetLang: "vi"},
	})

	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
	if res[0].Text != `\P` || !res[0].Skipped {
		t.Errorf("br: %+v", res[0])
	}
	if res[1].Err == nil || res[1].Text != "Danger zone" {
		t.Errorf("bad: %+v", res[1])
	}
	if res[2].Text != `FLOOR PLAN\PLEVEL 1` {
		t.Errorf("ok: %+v", res[2])
	}
}

func TestTranslator_UnreadablePayloadNotRemembered(t *testing.T) {
	var captcha atomic.Bool
	captcha.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captcha.Load() {
			w.Write([]byte(`<html>captcha</html>`))
			return
		}
		w.Write([]byte(`[[["Xin chào","Hello"]]]`))
	}))
	defer srv.Close()

	mem := &mapMemory{m: map[string]string{}}
	tr := New(newTestClient(srv.URL, 3), Options{Memory: mem})
	job := Job{Text: "Hello", SourceLang: "en", TargetLang: "vi"}

	first := tr.Translate(context.Background(), job)
	if first.Text != "Hello" || first.Changed || !errors.Is(first.Err, ErrUnreadablePayload) {
		t.Fatalf("first = %+v", first)
	}
	if len(mem.m) != 0 {
		t.Fatalf("memory holds %v after an unreadable payload", mem.m)
	}

	captcha.Store(false)
	second := tr.Translate(context.Background(), job)
	if second.Text != "Xin chào" || second.Cached {
		t.Errorf("second = %+v", second)
	}
}
