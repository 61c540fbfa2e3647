package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrFailedToGetUser    = errors.New("failed to get user info from Google")
	ErrEmailNotVerified   = errors.New("Google account email is not verified")
	ErrOAuthNotConfigured = errors.New("Google sign-in is not configured")
)

// GoogleUserInfo represents user information from Google
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier validates Google access tokens obtained by the mobile
// client's native sign-in flow and resolves them to a user profile.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a new Google token verifier
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// IsConfigured checks if Google sign-in is properly configured
func (v *GoogleVerifier) IsConfigured() bool {
	return v.clientID != ""
}

// VerifyAccessToken fetches the Google profile behind an access token.
// The token comes from the mobile app's native Google sign-in; the backend
// never sees the user's Google credentials.
func (v *GoogleVerifier) VerifyAccessToken(ctx context.Context, accessToken string) (*GoogleUserInfo, error) {
	if !v.IsConfigured() {
		return nil, ErrOAuthNotConfigured
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, src)

	resp, err := client.Get(userInfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFailedToGetUser, resp.StatusCode)
	}

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}

	if !userInfo.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	return &userInfo, nil
}
