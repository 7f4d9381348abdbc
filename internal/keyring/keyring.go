// Package keyring wraps zalando/go-keyring with operation timeouts.
// Some desktop keychain backends block indefinitely when locked; the
// wrappers here give up after three seconds so the CLI stays usable.
package keyring

import (
	"errors"
	"time"

	"github.com/zalando/go-keyring"
)

// Service is the keychain service name under which ddog stores
// profile credentials.
const Service = "ddog"

// ErrNotFound is returned when no secret exists for the given user.
var ErrNotFound = errors.New("secret not found in keyring")

// TimeoutError is returned when a keyring operation exceeds the deadline.
type TimeoutError struct {
	message string
}

func (e *TimeoutError) Error() string { return e.message }

// Set stores a secret for the given user key.
func Set(user, secret string) error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- keyring.Set(Service, user, secret)
	}()
	select {
	case err := <-ch:
		return err
	case <-time.After(3 * time.Second):
		return &TimeoutError{"timeout while trying to set secret in keyring"}
	}
}

// Get retrieves a secret for the given user key.
func Get(user string) (string, error) {
	type result struct {
		val string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer close(ch)
		val, err := keyring.Get(Service, user)
		ch <- result{val, err}
	}()
	select {
	case res := <-ch:
		if errors.Is(res.err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return res.val, res.err
	case <-time.After(3 * time.Second):
		return "", &TimeoutError{"timeout while trying to get secret from keyring"}
	}
}

// Delete removes a secret for the given user key.
func Delete(user string) error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- keyring.Delete(Service, user)
	}()
	select {
	case err := <-ch:
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return err
	case <-time.After(3 * time.Second):
		return &TimeoutError{"timeout while trying to delete secret from keyring"}
	}
}

// MockInit sets up an in-memory keyring backend for tests.
func MockInit() {
	keyring.MockInit()
}
