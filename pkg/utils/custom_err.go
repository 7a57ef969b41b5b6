package utils

import "errors"

var (
	ErrMissingField         = errors.New("missing required field")
	ErrUnsupportedPhotoType = errors.New("unsupported photo type")
	ErrUserAuthFailed       = errors.New("user authentication failed")
	ErrAlreadyCheckedIn     = errors.New("already checked in")
	ErrSpotNotFound         = errors.New("spot not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrStorageError         = errors.New("storage error")
	ErrDatabaseError        = errors.New("database error")
)
