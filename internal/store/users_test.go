package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"ok", "alice", "alice@example.com", "password123", nil},
		{"empty username", "", "a@example.com", "password123", common.ErrorValidation},
		{"whitespace username", "   ", "a@example.com", "password123", common.ErrorValidation},
		{"email without at", "bob", "not-an-email", "password123", common.ErrorValidation},
		{"empty email", "bob", "", "password123", common.ErrorValidation},
		{"short password", "bob", "bob@example.com", "short", common.ErrorValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(date(2024, time.January, 1))
			id, err := s.RegisterUser(tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, id, 36)
		})
	}
}

func TestRegisterUserConflicts(t *testing.T) {
	s := newTestStore(date(2024, time.January, 1))
	mustRegister(t, s, "alice")

	_, err := s.RegisterUser("alice", "other@example.com", "password123")
	require.ErrorIs(t, err, common.ErrorConflict)

	_, err = s.RegisterUser("alice2", "alice@example.com", "password123")
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(date(2024, time.January, 1))
	mustRegister(t, s, "alice")

	id, err := s.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.Authenticate("alice", "wrong-password")
	require.ErrorIs(t, err, common.ErrorAuth)

	_, err = s.Authenticate("nobody", "password123")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserReturnsCopy(t *testing.T) {
	s := newTestStore(date(2024, time.January, 1))
	mustRegister(t, s, "alice")

	u, err := s.GetUser("alice")
	require.NoError(t, err)
	u.Email = "mutated@example.com"

	again, err := s.GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", again.Email)
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(date(2024, time.January, 1))
	mustRegister(t, s, "alice")
	mustRegister(t, s, "bob")

	id := mustCreate(t, s, TaskDraft{Title: "task", CreatedBy: "alice"})

	// Blocked while a task references the user.
	err := s.DeleteUser("alice")
	require.ErrorIs(t, err, common.ErrorConflict)

	require.NoError(t, s.AssignTask(id, "alice", "bob"))
	err = s.DeleteUser("bob")
	require.ErrorIs(t, err, common.ErrorConflict)

	require.NoError(t, s.DeleteTask(id))
	require.NoError(t, s.DeleteUser("alice"))

	_, err = s.GetUser("alice")
	require.ErrorIs(t, err, common.ErrorNotFound)

	// The email is free again after deletion.
	_, err = s.RegisterUser("alice2", "alice@example.com", "password123")
	require.NoError(t, err)
}

func TestUserSettings(t *testing.T) {
	s := newTestStore(date(2024, time.January, 1))
	mustRegister(t, s, "alice")

	settings, err := s.UserSettings("alice")
	require.NoError(t, err)
	assert.Equal(t, models.Settings{}, settings)

	want := models.Settings{Theme: "dark", DateFormat: "02.01.2006", Notifications: true}
	require.NoError(t, s.UpdateSettings("alice", want))

	settings, err = s.UserSettings("alice")
	require.NoError(t, err)
	assert.Equal(t, want, settings)

	err = s.UpdateSettings("nobody", want)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
