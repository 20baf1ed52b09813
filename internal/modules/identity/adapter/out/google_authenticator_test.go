package out

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "pti/internal/platform/errors"
)

func TestCredentialsFromIDToken(t *testing.T) {
	t.Parallel()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "1098432",
		"email": "jane@example.com",
		"name":  "Jane",
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	creds, err := CredentialsFromIDToken(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if creds.UserID != "1098432" || creds.Email != "jane@example.com" || creds.DisplayName != "Jane" || creds.IDToken != raw {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}

func TestCredentialsFromIDTokenRejectsMissingSubject(t *testing.T) {
	t.Parallel()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	for _, token := range []string{"", "not-a-jwt", raw} {
		if _, err := CredentialsFromIDToken(token); !errors.Is(err, apperrors.ErrNotAuthenticated) {
			t.Fatalf("token %q: expected not authenticated, got %v", token, err)
		}
	}
}

func TestRedirectURL(t *testing.T) {
	t.Parallel()
	logger := log.New(io.Discard, "", 0)
	cases := map[string]string{
		"":                          "http://localhost:6789/oauth2callback",
		"urn:ietf:wg:oauth:2.0:oob": "http://localhost:6789/oauth2callback",
		"http://localhost":          "http://localhost:6789/oauth2callback",
		"http://127.0.0.1:9999/cb":  "http://127.0.0.1:6789/cb",
		"https://example.com/cb":    "https://example.com/cb",
	}
	for in, want := range cases {
		if got := redirectURL(in, 6789, logger); got != want {
			t.Fatalf("redirectURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCallbackHandlerKeepsFirstResultAndNeverBlocks(t *testing.T) {
	t.Parallel()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	handler := callbackHandler("s1", codeCh, errCh)

	requests := []string{
		"/oauth2callback?state=s1&code=first",
		"/oauth2callback?state=s1&code=second",
		"/oauth2callback?state=s1&code=third",
		"/oauth2callback?state=s1&error=access_denied",
		"/oauth2callback?state=s1&error=access_denied",
		"/oauth2callback?state=s1",
		"/oauth2callback?state=wrong&code=x",
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, target := range requests {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback handler blocked on a repeated redirect")
	}

	if got := <-codeCh; got != "first" {
		t.Fatalf("code = %q, want first", got)
	}
	if err := <-errCh; !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("err = %v", err)
	}
}

func TestCallbackHandlerRejectsStateMismatch(t *testing.T) {
	t.Parallel()
	codeCh := make(chan string, 1)
	rec := httptest.NewRecorder()
	callbackHandler("s1", codeCh, make(chan error, 1)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?state=other&code=x", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(codeCh) != 0 {
		t.Fatal("mismatched state must not deliver a code")
	}
}
