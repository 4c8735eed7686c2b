package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/erazemk/popis/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type loginData struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login authenticates and stores the issued token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", model.ErrValidation)
	}
	req, err := jsonRequest(http.MethodPost, "/auth/login", false, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var data loginData
	if _, err := c.do(ctx, req, &data); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if data.Token == "" {
		return nil, errors.New("logging in: token not found in response")
	}
	if err := c.Session.Set(ctx, data.Token); err != nil {
		return nil, err
	}
	return data.User, nil
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (string, error) {
	if fullName == "" {
		return "", fmt.Errorf("%w: full name required", model.ErrValidation)
	}
	if err := model.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := model.ValidatePassword(password); err != nil {
		return "", err
	}
	req, err := jsonRequest(http.MethodPost, "/auth/register", false,
		registerRequest{FullName: fullName, Email: email, Password: password})
	if err != nil {
		return "", err
	}
	env, err := c.do(ctx, req, nil)
	if err != nil {
		return "", fmt.Errorf("registering: %w", err)
	}
	return env.Message, nil
}

// ForgotPassword asks the server to send a reset message to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := model.ValidateEmail(email); err != nil {
		return "", err
	}
	req, err := jsonRequest(http.MethodPost, "/auth/forgot-password", false, forgotPasswordRequest{Email: email})
	if err != nil {
		return "", err
	}
	env, err := c.do(ctx, req, nil)
	if err != nil {
		return "", fmt.Errorf("requesting password reset: %w", err)
	}
	return env.Message, nil
}

// Logout forgets the stored token. The server is not contacted.
func (c *Client) Logout(ctx context.Context) error {
	return c.Session.Clear(ctx)
}
