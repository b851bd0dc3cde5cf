package client

import (
	"context"
	"net/http"
)

// RegisterStudent creates a student account.
func (c *Client) RegisterStudent(ctx context.Context, reg StudentRegistration) error {
	return c.do(ctx, http.MethodPost, "/register", reg, nil)
}

// RegisterCounselor creates a counselor account.
func (c *Client) RegisterCounselor(ctx context.Context, reg CounselorRegistration) error {
	return c.do(ctx, http.MethodPost, "/api/counselors/register", reg, nil)
}

// LoginStudent authenticates a student and stores the returned token on the
// client for subsequent requests.
func (c *Client) LoginStudent(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return c.login(ctx, "/api/login/student", creds)
}

// LoginCounselor authenticates a counselor and stores the returned token.
func (c *Client) LoginCounselor(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return c.login(ctx, "/api/login/counselor", creds)
}

func (c *Client) login(ctx context.Context, path string, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, path, creds, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// VerifyToken checks the stored token against the server and returns the
// username and role it carries.
func (c *Client) VerifyToken(ctx context.Context) (username, role string, err error) {
	var resp struct {
		Valid    bool   `json:"valid"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/verify-token", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Username, resp.Role, nil
}

// UpdateStudentProfile updates the authenticated student's profile.
func (c *Client) UpdateStudentProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error) {
	return c.updateProfile(ctx, "/api/students/profile", update)
}

// UpdateCounselorProfile updates the authenticated counselor's profile.
func (c *Client) UpdateCounselorProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error) {
	return c.updateProfile(ctx, "/api/counselors/profile", update)
}

func (c *Client) updateProfile(ctx context.Context, path string, update ProfileUpdate) (*UserProfile, error) {
	var resp struct {
		User UserProfile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, path, update, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ChangeStudentPassword changes the authenticated student's password.
func (c *Client) ChangeStudentPassword(ctx context.Context, change PasswordChange) error {
	return c.do(ctx, http.MethodPut, "/api/students/password", change, nil)
}

// ChangeCounselorPassword changes the authenticated counselor's password.
func (c *Client) ChangeCounselorPassword(ctx context.Context, change PasswordChange) error {
	return c.do(ctx, http.MethodPut, "/api/counselors/password", change, nil)
}

// DeleteStudentAccount deletes the authenticated student's account.
func (c *Client) DeleteStudentAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/students/account", nil, nil)
}

// DeleteCounselorAccount deletes the authenticated counselor's account.
func (c *Client) DeleteCounselorAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/counselors/account", nil, nil)
}
