package keystore

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	DefaultService = "profile-tui"
	userName       = "api-token"
)

// ErrNotFound is returned by Load when no token is stored.
var ErrNotFound = keyring.ErrNotFound

// Store keeps the API token in the OS keyring under one service name.
type Store struct {
	service string
}

func New(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

func (s *Store) Service() string { return s.service }

func (s *Store) Save(token string) error {
	return keyring.Set(s.service, userName, token)
}

func (s *Store) Load() (string, error) {
	return keyring.Get(s.service, userName)
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *Store) Delete() error {
	err := keyring.Delete(s.service, userName)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
