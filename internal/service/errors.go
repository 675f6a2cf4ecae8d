package service

import (
	"storefront/internal/errors"
	"storefront/internal/repository"
)

// notFound maps a missing row to a NotFound error and leaves every other error alone.
func notFound(err error, what string) error {
	if repository.IsNotFound(err) {
		return errors.NotFound(what + " does not exist")
	}
	return err
}
