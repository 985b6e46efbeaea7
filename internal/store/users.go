package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// MinPasswordLength is the minimum accepted password length on registration.
const MinPasswordLength = 8

// RegisterUser creates a new account and returns its id. The plaintext
// password is hashed immediately and never retained.
func (s *Store) RegisterUser(username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return "", fmt.Errorf("username must not be empty: %w", common.ErrorValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("invalid email %q: %w", email, common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, common.ErrorValidation)
	}
	if _, ok := s.users[username]; ok {
		return "", fmt.Errorf("username %q: %w", username, common.ErrorConflict)
	}
	if _, ok := s.emails[email]; ok {
		return "", fmt.Errorf("email %q: %w", email, common.ErrorConflict)
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hashing credential: %w", common.ErrorInternal)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	s.users[username] = u
	s.emails[email] = username

	return u.ID, nil
}

// Authenticate verifies a credential and returns the user's id.
func (s *Store) Authenticate(username, password string) (string, error) {
	u, ok := s.users[username]
	if !ok {
		return "", fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	if !s.hasher.Verify(u.PasswordHash, []byte(password)) {
		return "", common.ErrorAuth
	}
	return u.ID, nil
}

// GetUser returns a copy of the named account.
func (s *Store) GetUser(username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c, nil
}

// DeleteUser removes an account. Deletion is blocked while any task still
// references the user as creator or assignee.
func (s *Store) DeleteUser(username string) error {
	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	for _, id := range s.order {
		t := s.tasks[id]
		if t.CreatedBy == username || t.AssignedTo == username {
			return fmt.Errorf("user %q is still referenced by task %s: %w", username, t.ID, common.ErrorConflict)
		}
	}
	delete(s.emails, u.Email)
	delete(s.users, username)
	return nil
}

// UpdateSettings replaces the user's display preferences.
func (s *Store) UpdateSettings(username string, settings models.Settings) error {
	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	u.Settings = settings
	return nil
}

// UserSettings returns the user's display preferences.
func (s *Store) UserSettings(username string) (models.Settings, error) {
	u, ok := s.users[username]
	if !ok {
		return models.Settings{}, fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	return u.Settings, nil
}
