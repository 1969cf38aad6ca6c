package services

import (
	"errors"
	"fmt"

	"epl-api/packages/core/repository"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// storeErr translates repository sentinels. what names the entity for the message.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, repository.ErrInvalidReference):
		return fmt.Errorf("%w: %s is referenced by other records or references a missing one", ErrConflict, what)
	}
	return err
}

// mustExist turns a missing referenced row into a BadRequest.
func mustExist(err error, what string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return badRequest("%s %d does not exist", what, id)
	}
	return err
}
