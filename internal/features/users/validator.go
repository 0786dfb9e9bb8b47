package users

import (
	"github.com/yourplaces/backend/internal/pkg/httperror"
	"github.com/yourplaces/backend/internal/pkg/validator"
)

// Signup input rules: name at least 2 characters, a well-formed email, a
// password of at least 6 characters.
func ValidateSignup(req *SignupRequest) error {
	if !validator.MinLength(req.Name, 2) ||
		!validator.IsValidEmail(req.Email) ||
		!validator.MinLength(req.Password, 6) {
		return httperror.UnprocessableEntity("Invalid inputs passed, please check your data.")
	}
	return nil
}

func ValidateLogin(req *LoginRequest) error {
	if !validator.IsValidEmail(req.Email) || !validator.MinLength(req.Password, 6) {
		return httperror.UnprocessableEntity("Invalid inputs passed, please check your data.")
	}
	return nil
}
