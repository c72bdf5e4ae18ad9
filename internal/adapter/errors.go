package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("concurrent modification")
	ErrUnavailable         = errors.New("server unavailable")
	ErrInternalServerError = errors.New("internal server error")

	ErrEmptyAddress = errors.New("empty address")
)
