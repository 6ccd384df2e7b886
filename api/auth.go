package api

import (
	"context"

	"github.com/Josesitobb/adcu-client/model"
)

// SignInData is the payload returned by a successful sign-in.
type SignInData struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterRequest creates a new platform account.
type RegisterRequest struct {
	Name     string `json:"name"`
	IDCard   string `json:"idCard"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Post     string `json:"post"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type refreshData struct {
	Token string `json:"token"`
}

// SignIn authenticates the user and persists the returned token and profile
// so that later calls carry the bearer credential.
func (c *Client) SignIn(ctx context.Context, email, password string) Result[SignInData] {
	raw, status, cerr := c.postJSON(ctx, "/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if cerr != nil {
		return fail[SignInData](cerr)
	}

	res := decode[SignInData](raw, status)
	if res.Success {
		if err := c.session.Set(res.Data.Token, &res.Data.User); err != nil {
			return Result[SignInData]{Success: false, Message: "failed to save session: " + err.Error(), Status: status}
		}
	}
	return res
}

// Logout tells the server to end the session and clears the local session
// regardless of the server outcome.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	raw, status, cerr := c.postJSON(ctx, "/auth/logout", nil)
	_ = c.session.Clear()
	if cerr != nil {
		return fail[struct{}](cerr)
	}
	return decode[struct{}](raw, status)
}

// Register creates a new account. Requires an authenticated admin session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[model.User] {
	raw, status, cerr := c.postJSON(ctx, "/auth/register", req)
	if cerr != nil {
		return fail[model.User](cerr)
	}
	return decode[model.User](raw, status)
}

// Verify checks the stored token against the server and returns the profile
// it resolves to. This endpoint still answers with the legacy "date"
// envelope key, which the client accepts transparently.
func (c *Client) Verify(ctx context.Context) Result[model.User] {
	raw, status, cerr := c.postJSON(ctx, "/auth/verify", nil)
	if cerr != nil {
		return fail[model.User](cerr)
	}
	return decode[model.User](raw, status)
}

// Refresh exchanges the stored token for a fresh one and re-persists it with
// the current profile.
func (c *Client) Refresh(ctx context.Context) Result[struct{}] {
	raw, status, cerr := c.postJSON(ctx, "/auth/refresh", nil)
	if cerr != nil {
		return fail[struct{}](cerr)
	}

	res := decode[refreshData](raw, status)
	if !res.Success {
		return Result[struct{}]{Success: false, Message: res.Message, Status: res.Status, Code: res.Code}
	}

	profile, err := c.session.Profile()
	if err != nil {
		profile = nil
	}
	if err := c.session.Set(res.Data.Token, profile); err != nil {
		return Result[struct{}]{Success: false, Message: "failed to save session: " + err.Error(), Status: status}
	}
	return Result[struct{}]{Success: true, Message: msgSuccess, Status: status}
}
