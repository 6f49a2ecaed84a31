package auth

import (
	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"

	"github.com/deltagreen-vtt/dgsettings/internal/config"
)

// Service authenticates configured users and resolves their permissions.
type Service struct {
	users map[string]config.User
}

// NewService creates a new auth service.
func NewService(users map[string]config.User) *Service {
	return &Service{users: users}
}

// Authenticate checks a password against the user's argon2id hash.
func (s *Service) Authenticate(username, password string) error {
	user, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.Hash)
	if err != nil {
		return errors.Wrapf(err, "password hash of %s", username)
	}

	if !match {
		return ErrInvalidPassword
	}

	return nil
}

// GetUserPermissions returns all permissions of a user.
func (s *Service) GetUserPermissions(username string) []string {
	user, ok := s.users[username]
	if !ok {
		return nil
	}

	perms := []string{PermSettingsView}
	if user.GameMaster {
		perms = append(perms, PermSettingsRestricted)
	}

	return perms
}

// HasPermission checks if a user has a specific permission.
func (s *Service) HasPermission(username, permission string) bool {
	for _, p := range s.GetUserPermissions(username) {
		if p == permission {
			return true
		}
	}

	return false
}

// HashPassword returns an argon2id hash for the Users config.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return hash, nil
}
