package erp

import (
	"context"
	"net/http"
	"time"
)

// AuthClient exchanges credentials for a bearer token.
type AuthClient struct {
	c *Client
}

func (c *Client) Auth() AuthClient {
	return AuthClient{c: c}
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the token the backend issues on a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login authenticates against the backend. It is the one call that
// goes out without a bearer token.
func (a AuthClient) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var session Session
	err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   creds,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
