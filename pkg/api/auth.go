package api

import "context"

// AuthService exposes the authentication and profile endpoints.
// Every operation issues exactly one request, no retries, and returns a
// Result: the backend's body on 2xx, the backend's error body on a
// structured failure, or a synthesized message when no response arrived.
type AuthService struct {
	client *Client
}

// NewAuthService creates the auth facade.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{client: c}
}

// Login exchanges credentials for a token and user profile.
func (s *AuthService) Login(ctx context.Context, creds Credentials) Result[AuthResponse] {
	if p := validatePayload(creds); p != nil {
		return Failure[AuthResponse](p)
	}
	var out AuthResponse
	if err := s.client.Post(ctx, "users/login/", creds, &out); err != nil {
		return Failure[AuthResponse](errorPayload(err, "Login failed"))
	}
	return Success(out)
}

// Register creates a new account and returns its first session token.
func (s *AuthService) Register(ctx context.Context, reg Registration) Result[AuthResponse] {
	if p := validatePayload(reg); p != nil {
		return Failure[AuthResponse](p)
	}
	var out AuthResponse
	if err := s.client.Post(ctx, "users/register/", reg, &out); err != nil {
		return Failure[AuthResponse](errorPayload(err, "Registration failed"))
	}
	return Success(out)
}

// Logout revokes the token server-side. The local session is cleared even
// when the backend call fails: logout is locally authoritative, and the
// user ends up signed out client-side regardless of server acknowledgement.
func (s *AuthService) Logout(ctx context.Context) Result[struct{}] {
	err := s.client.Post(ctx, "users/logout/", nil, nil)
	s.client.ClearSession(ctx)
	if err != nil {
		return Failure[struct{}](errorPayload(err, "Logout failed"))
	}
	return Success(struct{}{})
}

// GetProfile fetches the authenticated user's profile.
func (s *AuthService) GetProfile(ctx context.Context) Result[UserProfile] {
	var out UserProfile
	if err := s.client.Get(ctx, "users/profile/", &out); err != nil {
		return Failure[UserProfile](errorPayload(err, "Failed to fetch profile"))
	}
	return Success(out)
}

// UpdateProfile applies a partial profile update and returns the
// refreshed profile.
func (s *AuthService) UpdateProfile(ctx context.Context, upd ProfileUpdate) Result[UserProfile] {
	if p := validatePayload(upd); p != nil {
		return Failure[UserProfile](p)
	}
	var out UserProfile
	if err := s.client.Put(ctx, "users/profile/", upd, &out); err != nil {
		return Failure[UserProfile](errorPayload(err, "Failed to update profile"))
	}
	return Success(out)
}

// RequestPasswordReset asks the backend to start a password reset flow.
// Works with or without an authenticated session.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req PasswordResetRequest) Result[PasswordResetResponse] {
	if p := validatePayload(req); p != nil {
		return Failure[PasswordResetResponse](p)
	}
	var out PasswordResetResponse
	if err := s.client.Post(ctx, "users/password-reset/", req, &out); err != nil {
		return Failure[PasswordResetResponse](errorPayload(err, "Password reset request failed"))
	}
	return Success(out)
}
