package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/donelist-dev/donelist/internal/types"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	oauthConfig *oauth2.Config
	userinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

func InitOAuth(clientID, clientSecret, callbackURL string) error {
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	oauthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}

	return nil
}

// AuthCodeURL returns the provider redirect URL carrying the signed state.
func AuthCodeURL(state string) string {
	return oauthConfig.AuthCodeURL(state)
}

type userinfo struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// FetchProfile exchanges the callback code and loads the provider profile.
// The raw userinfo document rides along for persistence.
func FetchProfile(ctx context.Context, code string) (types.Profile, error) {
	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := oauthConfig.Client(ctx, token)

	resp, err := client.Get(userinfoURL)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Profile{}, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	var info userinfo

	if err := json.Unmarshal(body, &info); err != nil {
		return types.Profile{}, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if info.Sub == "" {
		return types.Profile{}, fmt.Errorf("userinfo response has no subject identifier")
	}

	profile := types.Profile{
		Subject:     info.Sub,
		DisplayName: info.Name,
		Raw:         body,
	}

	if info.Email != "" {
		profile.Emails = []string{info.Email}
	}

	if info.Picture != "" {
		profile.Photos = []string{info.Picture}
	}

	return profile, nil
}
