package api

import (
	"context"

	"sisexpo/pkg/models"
)

// AuthService covers the authentication endpoints. Login and RefreshToken
// store the returned token pair on the shared transport; every other method
// is a plain pass-through.
type AuthService struct {
	t *Transport
}

// Login authenticates with email/password and stores the session tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) Result[models.Session] {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	res := Decode[models.Session](s.t.Post(ctx, "/auth/login", body))
	if res.Success && res.Data != nil {
		if err := s.t.SetTokens(res.Data.AccessToken, res.Data.RefreshToken); err != nil {
			return Result[models.Session]{
				Success: false,
				Error:   "failed to persist session: " + err.Error(),
				Code:    models.ErrCodeInternal,
			}
		}
	}
	return res
}

// RegisterRequest is the account creation body.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"prenom"`
	LastName     string `json:"nom"`
	Phone        string `json:"telephone,omitempty"`
	Organization string `json:"organisation,omitempty"`
	Role         string `json:"role"`
}

// Register creates an account. The backend sends a verification email;
// no session is opened until the email is verified and the user logs in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) Result[models.User] {
	return Decode[models.User](s.t.Post(ctx, "/auth/register", req))
}

// Logout invalidates the session server-side and wipes local tokens either way.
func (s *AuthService) Logout(ctx context.Context) Result[struct{}] {
	res := Decode[struct{}](s.t.Post(ctx, "/auth/logout", nil))
	if err := s.t.ClearTokens(); err != nil && res.Success {
		return Result[struct{}]{
			Success: false,
			Error:   "failed to clear session: " + err.Error(),
			Code:    models.ErrCodeInternal,
		}
	}
	return res
}

// RefreshToken exchanges the stored refresh token for a new pair.
func (s *AuthService) RefreshToken(ctx context.Context) Result[models.Session] {
	refresh := s.t.RefreshToken()
	if refresh == "" {
		return Result[models.Session]{
			Success: false,
			Error:   models.ErrNotAuthenticated.Error(),
			Code:    models.ErrCodeUnauthorized,
		}
	}
	body := map[string]string{"refreshToken": refresh}
	res := Decode[models.Session](s.t.Post(ctx, "/auth/refresh", body))
	if res.Success && res.Data != nil {
		if err := s.t.SetTokens(res.Data.AccessToken, res.Data.RefreshToken); err != nil {
			return Result[models.Session]{
				Success: false,
				Error:   "failed to persist session: " + err.Error(),
				Code:    models.ErrCodeInternal,
			}
		}
	}
	return res
}

// ForgotPassword asks the backend to email a reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) Result[struct{}] {
	return Decode[struct{}](s.t.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}))
}

// ResetPassword sets a new password using an emailed reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) Result[struct{}] {
	body := map[string]string{
		"token":    token,
		"password": newPassword,
	}
	return Decode[struct{}](s.t.Post(ctx, "/auth/reset-password", body))
}

// VerifyEmail confirms an account with an emailed verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) Result[struct{}] {
	return Decode[struct{}](s.t.Post(ctx, "/auth/verify-email", map[string]string{"token": token}))
}

// ResendVerification re-sends the verification email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) Result[struct{}] {
	return Decode[struct{}](s.t.Post(ctx, "/auth/resend-verification", map[string]string{"email": email}))
}
