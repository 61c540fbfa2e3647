package response

import "github.com/mrfandu1/Inventory-Stocks/internal/domain/entity"

// AuthResponse represents the payload returned after a successful
// login, registration, token refresh or Google sign-in
type AuthResponse struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}

// NewAuthResponse builds an auth response with the standard token type
func NewAuthResponse(user *entity.User, accessToken, refreshToken string) *AuthResponse {
	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}
}
