package session

import (
	"net/http/httptest"
	"testing"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
)

func TestCheck_NeverConnectedIsQuiet(t *testing.T) {
	t.Parallel()

	st := &memoryStore{}
	svc := NewStatusService(newTestFactory(t, st, &fakeRefresher{}, "http://unused.invalid"), st)

	status := svc.Check(newFactoryContext(t))
	if status.IsConnected {
		t.Fatal("want not connected")
	}
	if status.Error != "" {
		t.Fatalf("never-connected must carry no error message, got %q", status.Error)
	}
}

func TestCheck_ConnectedReturnsUser(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	st := &memoryStore{pair: twitter.CredentialPair{AccessToken: "good", RefreshToken: "rt"}}
	svc := NewStatusService(newTestFactory(t, st, &fakeRefresher{}, srv.URL), st)

	status := svc.Check(newFactoryContext(t))
	if !status.IsConnected {
		t.Fatalf("want connected, got %+v", status)
	}
	if status.User == nil || status.User.Username != "chirper" {
		t.Fatalf("want user chirper, got %+v", status.User)
	}
}

func TestCheck_ExpiredSessionCarriesMessage(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{rejected: map[string]bool{"Bearer stale": true}}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	st := &memoryStore{pair: twitter.CredentialPair{AccessToken: "stale"}}
	svc := NewStatusService(newTestFactory(t, st, &fakeRefresher{}, srv.URL), st)

	status := svc.Check(newFactoryContext(t))
	if status.IsConnected {
		t.Fatal("want not connected")
	}
	if status.Error == "" {
		t.Fatal("expired session must carry a reconnect message")
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	t.Parallel()

	st := &memoryStore{pair: twitter.CredentialPair{AccessToken: "at", RefreshToken: "rt"}}
	svc := NewStatusService(newTestFactory(t, st, &fakeRefresher{}, "http://unused.invalid"), st)

	c := newFactoryContext(t)
	svc.Disconnect(c)
	if st.pair.HasAccessToken() || st.pair.HasRefreshToken() {
		t.Fatalf("tokens not cleared: %+v", st.pair)
	}

	// Second disconnect on an empty store is a no-op, not an error.
	svc.Disconnect(c)
	if st.pair != (twitter.CredentialPair{}) {
		t.Fatalf("want empty pair after repeated disconnect, got %+v", st.pair)
	}
}
