package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	a := GenerateRequestID()
	b := GenerateRequestID()
	if len(a) != 8 {
		t.Fatalf("want 8-char id, got %q", a)
	}
	if a == b {
		t.Fatal("ids should differ across calls")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "abcd1234")
	if got := GetRequestID(ctx); got != "abcd1234" {
		t.Fatalf("want abcd1234, got %q", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("want empty id for bare context, got %q", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("request context should carry an id")
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Fatalf("response header %q does not match context id %q", got, seen)
	}
}

func TestRequestIDMiddleware_HonorsIncomingHeader(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "upstream-id" {
		t.Fatalf("incoming id should be preserved, got %q", got)
	}
}
