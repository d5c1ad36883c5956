package twitterapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("test-token", nil)
	client.BaseURL = srv.URL
	return client
}

func TestMe(t *testing.T) {
	t.Parallel()

	var gotAuth, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"42","username":"chirper","name":"Chirper","profile_image_url":"https://img.example/p.png"}}`))
	})

	user, err := client.Me(context.Background(), "profile_image_url")
	if err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotQuery != "user.fields=profile_image_url" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if user.ID != "42" || user.Username != "chirper" || user.ProfileImageURL == "" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestMe_NoFieldsOmitsQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":{"id":"42","username":"chirper"}}`))
	})

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("probe call must not request extra fields, got %q", gotQuery)
	}
}

func TestCreateTweet(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1234567890"}}`))
	})

	id, err := client.CreateTweet(context.Background(), "Hello world", "")
	if err != nil {
		t.Fatalf("CreateTweet() error: %v", err)
	}
	if id != "1234567890" {
		t.Fatalf("want id 1234567890, got %s", id)
	}
	if gjson.GetBytes(gotBody, "text").String() != "Hello world" {
		t.Fatalf("unexpected payload: %s", gotBody)
	}
	if gjson.GetBytes(gotBody, "reply").Exists() {
		t.Fatal("standalone post must not carry a reply block")
	}
}

func TestCreateTweet_ReplyLink(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"data":{"id":"2"}}`))
	})

	if _, err := client.CreateTweet(context.Background(), "second", "1"); err != nil {
		t.Fatalf("CreateTweet() error: %v", err)
	}
	if got := gjson.GetBytes(gotBody, "reply.in_reply_to_tweet_id").String(); got != "1" {
		t.Fatalf("want reply link to 1, got %q", got)
	}
}

func TestDo_MapsAPIErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"title":"Unauthorized","detail":"Token expired"}`))
	})

	_, err := client.Me(context.Background())
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Title != "Unauthorized" || apiErr.Detail != "Token expired" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if !IsUnauthorized(err) {
		t.Fatal("401 should read as unauthorized")
	}
}

func TestIsUnauthorized_OnlyFor401(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"401", &APIError{StatusCode: 401}, true},
		{"403", &APIError{StatusCode: 403}, false},
		{"500", &APIError{StatusCode: 500}, false},
		{"wrapped 401", fmt.Errorf("probe: %w", &APIError{StatusCode: 401}), true},
		{"plain error", fmt.Errorf("dial tcp: refused"), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsUnauthorized(tt.err); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}
