package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordTooShort    = errors.New("password must be at least 5 characters")
	ErrWrongCredentials    = errors.New("unable to authenticate with provided credentials")

	ErrValidationNoTitle        = errors.New("recipe title must not be empty")
	ErrValidationNoTimeMinutes  = errors.New("recipe time_minutes is required")
	ErrValidationBadTimeMinutes = errors.New("recipe time_minutes must not be negative")
	ErrValidationNoPrice        = errors.New("recipe price is required")
	ErrValidationBadPrice       = errors.New("recipe price must not be negative")
	ErrValidationNoName         = errors.New("name must not be empty")

	ErrInvalidImage = errors.New("uploaded file is not a valid image")
)
