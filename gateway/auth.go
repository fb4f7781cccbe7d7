package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/islam174932/EcommerceWeb/core"
)

// Login exchanges email and password for a session token.
// The email is trimmed before submission; the password is sent as-is.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	}

	var envelope authEnvelope
	if err := c.do(ctx, "gateway.Login", http.MethodPost, "/auth/signin", body, authNone, "", &envelope); err != nil {
		return nil, err
	}
	if envelope.Token == "" {
		return nil, &APIError{Op: "gateway.Login", Status: http.StatusOK, Err: core.ErrMalformedResponse}
	}

	creds := &Credentials{Token: envelope.Token}
	if envelope.User != nil {
		creds.User = *envelope.User
	}
	return creds, nil
}

// Register creates an account and returns a fresh session token.
// Name, email and phone are trimmed the way the API documentation shows.
func (c *Client) Register(ctx context.Context, reg Registration) (*Credentials, error) {
	body := Registration{
		Name:       strings.TrimSpace(reg.Name),
		Email:      strings.TrimSpace(reg.Email),
		Password:   reg.Password,
		RePassword: reg.RePassword,
		Phone:      strings.TrimSpace(reg.Phone),
	}

	var envelope authEnvelope
	if err := c.do(ctx, "gateway.Register", http.MethodPost, "/auth/signup", body, authNone, "", &envelope); err != nil {
		return nil, err
	}
	if envelope.Token == "" {
		return nil, &APIError{Op: "gateway.Register", Status: http.StatusOK, Err: core.ErrMalformedResponse}
	}

	creds := &Credentials{Token: envelope.Token}
	if envelope.User != nil {
		creds.User = *envelope.User
	}
	return creds, nil
}

// ForgotPassword asks the API to email a reset code
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": strings.TrimSpace(email)}
	var envelope statusEnvelope
	return c.do(ctx, "gateway.ForgotPassword", http.MethodPost, "/auth/forgotPasswords", body, authNone, "", &envelope)
}

// VerifyResetCode validates a reset code previously emailed to the user
func (c *Client) VerifyResetCode(ctx context.Context, code string) error {
	body := map[string]string{"resetCode": strings.TrimSpace(code)}
	var envelope statusEnvelope
	return c.do(ctx, "gateway.VerifyResetCode", http.MethodPost, "/auth/verifyResetCode", body, authNone, "", &envelope)
}

// ResetPassword completes the two-step reset flow: the code must have been
// verified first, the reset call itself carries only email and new password
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{
		"email":       strings.TrimSpace(email),
		"newPassword": newPassword,
	}
	var envelope authEnvelope
	return c.do(ctx, "gateway.ResetPassword", http.MethodPut, "/auth/resetPassword", body, authNone, "", &envelope)
}
