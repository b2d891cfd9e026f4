package dto

import "github.com/go-playground/validator/v10"

// validate is shared by all request DTOs; requests are checked at the
// boundary before they reach the core services.
var validate = validator.New(validator.WithRequiredStructEnabled())
