package places

import (
	"github.com/yourplaces/backend/internal/pkg/httperror"
	"github.com/yourplaces/backend/internal/pkg/validator"
)

// Create input rules: title at least 2 characters, description at least 5,
// a non-empty address.
func ValidateCreate(req *CreateRequest) error {
	if !validator.MinLength(req.Title, 2) ||
		!validator.MinLength(req.Description, 5) ||
		!validator.NotEmpty(req.Address) {
		return httperror.UnprocessableEntity("Invalid inputs passed, please check your data.")
	}
	return nil
}

func ValidateUpdate(req *UpdateRequest) error {
	if !validator.MinLength(req.Title, 2) || !validator.MinLength(req.Description, 5) {
		return httperror.UnprocessableEntity("Invalid inputs passed, please check your data.")
	}
	return nil
}
