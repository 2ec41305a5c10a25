package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidTag          = goerr.New("invalid tag")
	ErrInvalidInput        = goerr.New("invalid input")
	ErrPersonNotFound      = goerr.New("person not found")
	ErrUserDetailsNotFound = goerr.New("user details not found")
	ErrStoreWrite          = goerr.New("failed to write to store")
	ErrEncode              = goerr.New("failed to encode record")
)
