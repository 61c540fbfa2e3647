package service

import (
	"context"
	"testing"
	"time"

	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/repository/memory"
	"github.com/mrfandu1/Inventory-Stocks/pkg/oauth"
	"github.com/mrfandu1/Inventory-Stocks/pkg/utils"
)

func newAuthFixture() *AuthService {
	store := memory.NewStore()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(store.Users(), jwtManager, oauth.NewGoogleVerifier(""))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Username != "ada" {
		t.Fatalf("expected username derived from email, got %q", user.Username)
	}
	if user.Password == "supersecret" {
		t.Fatalf("password stored in plain text")
	}

	result, err := svc.Login(ctx, &LoginInput{
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected both tokens to be issued")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	}); err == nil {
		t.Fatalf("expected login to fail with wrong password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	input := &RegisterInput{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Password: "supersecret",
	}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, input); err == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	login, err := svc.Login(ctx, &LoginInput{Email: "ada@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatalf("expected a new access token")
	}
	if refreshed.User.Email != "ada@example.com" {
		t.Fatalf("refresh resolved the wrong user")
	}

	if _, err := svc.RefreshToken(ctx, "not-a-token"); err == nil {
		t.Fatalf("expected garbage refresh token to be rejected")
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	sess := Session{UserID: user.ID, Email: user.Email}

	if err := svc.ChangePassword(ctx, sess, "wrong", "newpassword"); err == nil {
		t.Fatalf("expected change with wrong current password to fail")
	}

	if err := svc.ChangePassword(ctx, sess, "supersecret", "newpassword"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginInput{Email: "ada@example.com", Password: "newpassword"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestGoogleSignInRequiresConfiguration(t *testing.T) {
	svc := newAuthFixture()

	if _, err := svc.GoogleSignIn(context.Background(), "some-token"); err == nil {
		t.Fatalf("expected sign-in to fail without a configured client ID")
	}
}
