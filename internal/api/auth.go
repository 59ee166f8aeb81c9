package api

import (
	"encoding/json"
	"errors"
	"strings"
)

const adminLoginPath = "/api/admin/login"

// Admin is the signed-in staff member as returned by the login endpoint.
type Admin struct {
	ID      string `json:"_id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Number  string `json:"number,omitempty" yaml:"number,omitempty"`
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`
	Role    string `json:"role,omitempty" yaml:"role,omitempty"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
}

// LoginInput is the admin credential pair.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Admin   *Admin `json:"admin"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// Login exchanges credentials for the admin record.
func (c *Client) Login(input LoginInput) (*Admin, error) {
	data, status, err := c.postJSON(adminLoginPath, input)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindServer && strings.HasPrefix(apiErr.Message, "Server Error:") {
			apiErr.Message = "Invalid credentials!"
		}
		return nil, err
	}
	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(err)
	}
	if resp.Admin == nil {
		msg := strings.TrimSpace(resp.Message)
		if msg == "" {
			msg = "Invalid credentials!"
		}
		return nil, serverError(status, msg)
	}
	if resp.Admin.Token == "" {
		resp.Admin.Token = resp.Token
	}
	return resp.Admin, nil
}
