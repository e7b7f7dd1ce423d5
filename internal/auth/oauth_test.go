package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func setupProvider(t *testing.T, userinfoStatus int, userinfoBody string) func() {
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"bearer"}`))
	})

	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userinfoStatus)
		w.Write([]byte(userinfoBody))
	})

	server := httptest.NewServer(mux)

	previousConfig := oauthConfig
	previousURL := userinfoURL

	oauthConfig = &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  server.URL + "/auth",
			TokenURL: server.URL + "/token",
		},
	}
	userinfoURL = server.URL + "/userinfo"

	return func() {
		oauthConfig = previousConfig
		userinfoURL = previousURL
		server.Close()
	}
}

func TestFetchProfile(t *testing.T) {
	cleanup := setupProvider(t, http.StatusOK,
		`{"sub":"google-123","name":"Alice","email":"alice@example.com","picture":"https://example.com/a.png"}`)
	defer cleanup()

	profile, err := FetchProfile(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Equal(t, "google-123", profile.Subject)
	assert.Equal(t, "Alice", profile.DisplayName)
	assert.Equal(t, []string{"alice@example.com"}, profile.Emails)
	assert.Equal(t, []string{"https://example.com/a.png"}, profile.Photos)
	assert.NotEmpty(t, profile.Raw)
}

func TestFetchProfileNoEmail(t *testing.T) {
	cleanup := setupProvider(t, http.StatusOK, `{"sub":"google-456","name":"Bob"}`)
	defer cleanup()

	profile, err := FetchProfile(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Empty(t, profile.Emails)
	assert.Empty(t, profile.Photos)
}

func TestFetchProfileNoSubject(t *testing.T) {
	cleanup := setupProvider(t, http.StatusOK, `{"name":"Mallory"}`)
	defer cleanup()

	_, err := FetchProfile(context.Background(), "auth-code")
	assert.Error(t, err)
}

func TestFetchProfileUserinfoFailure(t *testing.T) {
	cleanup := setupProvider(t, http.StatusInternalServerError, `{}`)
	defer cleanup()

	_, err := FetchProfile(context.Background(), "auth-code")
	assert.Error(t, err)
}

func TestInitOAuthMissingCredentials(t *testing.T) {
	assert.Error(t, InitOAuth("", "", "http://localhost/callback"))
}
