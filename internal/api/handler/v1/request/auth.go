package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dainadb/improplan/internal/pkg/checks"
)

var (
	errWeakPassword            = errors.New("the password must be at least 8 characters and contain a letter and a digit")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
	Surnames        string `json:"surnames"`
}

func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Surnames, validation.Length(0, 200)),
	)
	if err != nil {
		return err
	}

	if !checks.IsStrongPassword(req.Password) {
		return errWeakPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
