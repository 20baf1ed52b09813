package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"pti/internal/modules/identity/domain"
	identityout "pti/internal/modules/identity/port/out"
	apperrors "pti/internal/platform/errors"
	"pti/internal/platform/id"
)

var scopes = []string{"openid", "email", "profile"}

const (
	authTimeout     = 5 * time.Minute
	shutdownTimeout = 2 * time.Second
)

// GoogleAuthenticator runs the OAuth authorization code flow against Google
// with a one-shot localhost listener catching the redirect.
type GoogleAuthenticator struct {
	secretsFile string
	port        int
	prompt      io.Writer
	logger      *log.Logger
}

func NewGoogleAuthenticator(secretsFile string, port int, prompt io.Writer, logger *log.Logger) identityout.Authenticator {
	return &GoogleAuthenticator{secretsFile: secretsFile, port: port, prompt: prompt, logger: logger}
}

func (a *GoogleAuthenticator) config() (*oauth2.Config, error) {
	b, err := os.ReadFile(a.secretsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secrets %s: %w", a.secretsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	cfg.RedirectURL = redirectURL(cfg.RedirectURL, a.port, a.logger)
	return cfg, nil
}

// redirectURL pins localhost and out-of-band redirects to the listener port.
func redirectURL(configured string, port int, logger *log.Logger) string {
	fallback := "http://localhost:" + strconv.Itoa(port) + "/oauth2callback"
	if configured == "" || configured == "urn:ietf:wg:oauth:2.0:oob" {
		return fallback
	}
	parsed, err := url.Parse(configured)
	if err != nil {
		logger.Printf("unparsable redirect url %q, using %s", configured, fallback)
		return fallback
	}
	if parsed.Hostname() != "localhost" && parsed.Hostname() != "127.0.0.1" {
		logger.Printf("redirect url %s is not a localhost callback", configured)
		return configured
	}
	parsed.Host = parsed.Hostname() + ":" + strconv.Itoa(port)
	if parsed.Path == "" || parsed.Path == "/" {
		parsed.Path = "/oauth2callback"
	}
	return parsed.String()
}

func (a *GoogleAuthenticator) Authenticate(ctx context.Context) (domain.Credentials, error) {
	cfg, err := a.config()
	if err != nil {
		return domain.Credentials{}, err
	}
	listener, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(a.port))
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("listen on port %d: %w", a.port, err)
	}
	defer listener.Close()

	state := id.RandomHex{}.New()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	server := &http.Server{
		Handler:      callbackHandler(state, codeCh, errCh),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			offer[error](errCh, fmt.Errorf("oauth callback server: %w", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(a.prompt, "Open this URL in your browser to sign in:\n%s\n", authURL)

	waitCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()
	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return domain.Credentials{}, err
	case <-waitCtx.Done():
		return domain.Credentials{}, fmt.Errorf("%w: authorization timed out", apperrors.ErrNotAuthenticated)
	}

	tok, err := cfg.Exchange(waitCtx, code)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	rawID, _ := tok.Extra("id_token").(string)
	creds, err := CredentialsFromIDToken(rawID)
	if err != nil {
		return domain.Credentials{}, err
	}
	creds.AccessToken = tok.AccessToken
	creds.RefreshToken = tok.RefreshToken
	creds.Expiry = tok.Expiry
	return creds, nil
}

// CredentialsFromIDToken reads the sub, email and name claims. The signature
// is not checked: raw must come from the token endpoint response.
func CredentialsFromIDToken(raw string) (domain.Credentials, error) {
	if raw == "" {
		return domain.Credentials{}, fmt.Errorf("%w: token response has no id_token", apperrors.ErrNotAuthenticated)
	}
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: parse id_token: %v", apperrors.ErrNotAuthenticated, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Credentials{}, fmt.Errorf("%w: unexpected id_token claims", apperrors.ErrNotAuthenticated)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Credentials{}, fmt.Errorf("%w: id_token has no subject", apperrors.ErrNotAuthenticated)
	}
	return domain.Credentials{
		UserID:      sub,
		Email:       stringClaim(claims, "email"),
		DisplayName: stringClaim(claims, "name"),
		IDToken:     raw,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// callbackHandler accepts the OAuth redirect. Only the first result is kept;
// later hits such as browser reloads never block.
func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if msg := q.Get("error"); msg != "" {
			http.Error(w, "authorization denied", http.StatusForbidden)
			offer(errCh, fmt.Errorf("%w: %s", apperrors.ErrNotAuthenticated, msg))
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "authorization code not found", http.StatusBadRequest)
			offer(errCh, fmt.Errorf("%w: no authorization code in redirect", apperrors.ErrNotAuthenticated))
			return
		}
		fmt.Fprintln(w, "Signed in to pti. You can close this window.")
		offer(codeCh, code)
	})
}

func offer[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}
