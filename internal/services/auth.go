// Google device-code OAuth flow for the ytmusicapi proxy
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/ytmcli/ytmcli/internal/shared"
)

// googleDeviceEndpoint is the device-code endpoint pair used by TV clients.
var googleDeviceEndpoint = oauth2.Endpoint{
	DeviceAuthURL: "https://oauth2.googleapis.com/device/code",
	TokenURL:      "https://oauth2.googleapis.com/token",
}

// OAuthAuthenticator runs the device-code flow and writes oauth.json for the
// proxy to consume.
type OAuthAuthenticator struct {
	config      *oauth2.Config
	output      io.Writer
	openBrowser func(string) error
}

// NewOAuthAuthenticator creates an authenticator for a TV-type OAuth client.
func NewOAuthAuthenticator(clientID, clientSecret string, output io.Writer) (*OAuthAuthenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", shared.ErrInvalidInput)
	}
	if output == nil {
		output = os.Stdout
	}

	return &OAuthAuthenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleDeviceEndpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/youtube"},
		},
		output:      output,
		openBrowser: shared.OpenBrowser,
	}, nil
}

// Setup obtains a device code, waits for the user to approve it, and writes
// the resulting token to path.
func (a *OAuthAuthenticator) Setup(ctx context.Context, path string) error {
	da, err := a.config.DeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("%w: device code request: %v", shared.ErrAuthFailed, err)
	}

	fmt.Fprintf(a.output, "Visit %s and enter code %s\n", da.VerificationURI, da.UserCode)
	if da.VerificationURIComplete != "" {
		// Ignore browser launch failures; the URL is already printed.
		_ = a.openBrowser(da.VerificationURIComplete)
	}

	token, err := a.config.DeviceAccessToken(ctx, da)
	if err != nil {
		return fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	return writeToken(path, token)
}

// writeToken persists the token in the oauth.json layout ytmusicapi expects.
func writeToken(path string, token *oauth2.Token) error {
	out := map[string]any{
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
		"token_type":    token.TokenType,
		"expires_at":    token.Expiry.Unix(),
		"scope":         "https://www.googleapis.com/auth/youtube",
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create auth directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
