// Package store implements the in-memory task-tracking core: the account
// registry, the task store with its append-only assignment log, the
// recurrence engine, the query engine and the reporting logic.
//
// A Store is built from a gateway snapshot at the start of an invocation and
// flushed back at the end. All operations are synchronous; each logical
// operation reads the injected clock exactly once, so the "now" used for
// overdue checks, completion timestamps and recurrence math never disagrees
// within one operation.
package store

import (
	"sort"

	"github.com/dmitrijs2005/taskkeeper/internal/clock"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// CredentialHasher derives and verifies credential digests. The concrete
// algorithm (bcrypt in production) is a collaborator, not a core concern.
type CredentialHasher interface {
	Hash(password []byte) ([]byte, error)
	// Verify must compare digests in constant time.
	Verify(hash, password []byte) bool
}

// AssignPolicy decides whether an actor may reassign a task. It is a
// capability supplied by the caller; the core hardcodes no role rules.
type AssignPolicy interface {
	CanAssign(assigner *models.User, task *models.Task) bool
}

// CreatorOnlyPolicy permits assignment only by the task's creator.
type CreatorOnlyPolicy struct{}

func (CreatorOnlyPolicy) CanAssign(assigner *models.User, task *models.Task) bool {
	return assigner != nil && task.CreatedBy == assigner.UserName
}

// Store holds the full data set of one invocation.
type Store struct {
	clock  clock.Clock
	hasher CredentialHasher
	policy AssignPolicy

	users  map[string]*models.User // keyed by username
	emails map[string]string       // email -> username

	tasks map[string]*models.Task
	order []string // task ids in creation order; the stable base for queries

	// usedIDs tracks every id ever issued so ids stay unique for the
	// store's lifetime even across deletions.
	usedIDs map[string]struct{}

	events []models.AssignmentEvent
}

// New returns an empty store.
func New(clk clock.Clock, hasher CredentialHasher, policy AssignPolicy) *Store {
	return &Store{
		clock:   clk,
		hasher:  hasher,
		policy:  policy,
		users:   make(map[string]*models.User),
		emails:  make(map[string]string),
		tasks:   make(map[string]*models.Task),
		usedIDs: make(map[string]struct{}),
	}
}

// Snapshot is the flat state exchanged with the persistence gateway.
// Tasks are ordered by creation.
type Snapshot struct {
	Users  []models.User
	Tasks  []models.Task
	Events []models.AssignmentEvent
}

// FromSnapshot builds a store from gateway state. Task order in the snapshot
// is preserved as the store's creation order.
func FromSnapshot(snap *Snapshot, clk clock.Clock, hasher CredentialHasher, policy AssignPolicy) *Store {
	s := New(clk, hasher, policy)
	for i := range snap.Users {
		u := snap.Users[i]
		s.users[u.UserName] = &u
		s.emails[u.Email] = u.UserName
	}
	for i := range snap.Tasks {
		t := snap.Tasks[i].Clone()
		s.tasks[t.ID] = t
		s.order = append(s.order, t.ID)
		s.usedIDs[t.ID] = struct{}{}
	}
	s.events = append(s.events, snap.Events...)
	return s
}

// Snapshot extracts the current state for the gateway. The returned value
// shares nothing with the store.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{}
	for _, u := range s.users {
		snap.Users = append(snap.Users, *u)
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].UserName < snap.Users[j].UserName })
	for _, id := range s.order {
		snap.Tasks = append(snap.Tasks, *s.tasks[id].Clone())
	}
	snap.Events = append(snap.Events, s.events...)
	return snap
}

// Events returns the assignment log in append order.
func (s *Store) Events() []models.AssignmentEvent {
	return append([]models.AssignmentEvent(nil), s.events...)
}
