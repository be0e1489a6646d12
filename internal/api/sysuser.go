package api

import (
	"context"
	"net/http"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=32"`
	Password        string `json:"password" validate:"required,min=6,max=64"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Nickname        string `json:"nickname,omitempty" validate:"omitempty,max=32"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,len=11,numeric"`
}

// LoginRequest represents the login request body, shared by both surfaces
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the profile payload returned on a successful login
type LoginResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// UserInfo is the short identity payload of the session-info endpoint
type UserInfo struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

// UserProfile is the full profile of the current user
type UserProfile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	Phone     string `json:"phone"`
	RealName  string `json:"realName"`
	IDNo      string `json:"idNo"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,len=11,numeric"`
}

// RealNameVerifyRequest represents the real-name verification request
type RealNameVerifyRequest struct {
	RealName string `json:"realName" validate:"required,max=64"`
	IDCard   string `json:"idCard" validate:"required,len=18"`
}

// ChangePasswordRequest represents the password change request
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=64"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Register creates a new visitor account and returns the user ID
func (c *Client) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if err := c.validateRequest(req); err != nil {
		return 0, err
	}

	var id int64
	if err := c.do(ctx, http.MethodPost, "/api/sys-user/register", nil, req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Login authenticates against the backend. The same endpoint serves both the
// visitor and the admin surface; the surface only matters client-side.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/sys-user/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the server-side session
func (c *Client) Logout(ctx context.Context) (bool, error) {
	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/sys-user/logout", nil, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// UserInfo fetches the current session's identity
func (c *Client) UserInfo(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.do(ctx, http.MethodGet, "/api/sys-user/info", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UserProfile fetches the current user's full profile
func (c *Client) UserProfile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/sys-user/detail", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates avatar and/or phone
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (bool, error) {
	if err := c.validateRequest(req); err != nil {
		return false, err
	}

	var ok bool
	if err := c.do(ctx, http.MethodPut, "/api/sys-user/profile", nil, req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// RealNameVerify submits real-name verification
func (c *Client) RealNameVerify(ctx context.Context, req RealNameVerifyRequest) (bool, error) {
	if err := c.validateRequest(req); err != nil {
		return false, err
	}

	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/sys-user/verify", nil, req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ChangePassword rotates the account password
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (bool, error) {
	if err := c.validateRequest(req); err != nil {
		return false, err
	}

	var ok bool
	if err := c.do(ctx, http.MethodPost, "/api/sys-user/change-password", nil, req, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
