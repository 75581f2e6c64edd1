package user

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrConfirmationRequired = errors.New(`deleting all users requires explicit confirmation. Set "confirm: true" in request body`)
	ErrRoleRequired         = errors.New(`role is required when criteria is "role"`)
	ErrBatchSetup           = errors.New("failed to read batch input")
)
