package backend

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, input RegisterInput) (Token, error) {
	var token Token
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", input, &token); err != nil {
		return Token{}, err
	}
	return token, nil
}

// Login exchanges credentials for a token. The backend expects OAuth2-style
// form fields, with the email passed as username.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	var token Token
	if err := c.doForm(ctx, "/api/auth/login", form, &token); err != nil {
		return Token{}, err
	}
	return token, nil
}

// CurrentUser resolves the profile behind the bound token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
