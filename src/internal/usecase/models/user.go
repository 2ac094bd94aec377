package models

import (
	"fmt"
	"strings"
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r RegisterUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("email must contain @")
	}
	if !isTenDigitPhone(strings.TrimSpace(r.Phone)) {
		return fmt.Errorf("phone must be exactly 10 digits")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type AuthenticateResponse struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
}

func isTenDigitPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, ch := range phone {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
