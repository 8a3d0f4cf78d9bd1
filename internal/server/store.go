package server

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	models.User
	hash []byte
}

type storedNote struct {
	models.Note
	owner      int64
	transcript string
}

// Store keeps users and notes in memory. Every method is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]*account
	byName   map[string]int64
	byEmail  map[string]int64
	notes    map[int64]*storedNote
	nextUser int64
	nextNote int64
	cost     int
	now      func() time.Time
}

// NewStore creates an empty store hashing passwords with the given bcrypt cost.
//
// A cost outside bcrypt's range uses [bcrypt.DefaultCost].
func NewStore(cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		users:   make(map[int64]*account),
		byName:  make(map[string]int64),
		byEmail: make(map[string]int64),
		notes:   make(map[int64]*storedNote),
		cost:    cost,
		now:     time.Now,
	}
}

// UsernameTaken reports whether an account already uses username.
func (s *Store) UsernameTaken(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byName[username]
	return ok
}

// EmailTaken reports whether an account already uses email.
func (s *Store) EmailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok
}

// CreateUser hashes the password and stores a new account.
func (s *Store) CreateUser(username, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[username]; ok {
		return models.User{}, fmt.Errorf("username %q already exists", username)
	}

	s.nextUser++
	acct := &account{
		User: models.User{ID: s.nextUser, Username: username, Email: email},
		hash: hash,
	}
	s.users[acct.ID] = acct
	s.byName[username] = acct.ID
	if email != "" {
		s.byEmail[email] = acct.ID
	}
	return acct.User, nil
}

// Authenticate checks a username and password pair.
func (s *Store) Authenticate(username, password string) (models.User, bool) {
	s.mu.RLock()
	id, ok := s.byName[username]
	var acct *account
	if ok {
		acct = s.users[id]
	}
	s.mu.RUnlock()

	if acct == nil {
		return models.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return models.User{}, false
	}
	return acct.User, true
}

// User looks an account up by id.
func (s *Store) User(id int64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return acct.User, true
}

// AddNote stores generated content for owner and assigns an id.
func (s *Store) AddNote(owner int64, youtubeURL string, gen *GeneratedNotes) models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNote++
	n := &storedNote{
		Note: models.Note{
			ID:         s.nextNote,
			YouTubeURL: youtubeURL,
			CreatedAt:  s.now().UTC(),
			Summary:    gen.Summary,
			Flashcards: gen.Flashcards,
			Quiz:       gen.Quiz,
		},
		owner:      owner,
		transcript: gen.Transcript,
	}
	s.notes[n.ID] = n
	return n.Note
}

// Notes lists owner's notes, newest first.
func (s *Store) Notes(owner int64) []storedNote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storedNote, 0)
	for _, n := range s.notes {
		if n.owner == owner {
			out = append(out, *n)
		}
	}
	slices.SortFunc(out, func(a, b storedNote) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out
}

// Note returns a note only when owner owns it.
func (s *Store) Note(owner, id int64) (storedNote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok || n.owner != owner {
		return storedNote{}, false
	}
	return *n, true
}

// DeleteNote removes a note owned by owner.
func (s *Store) DeleteNote(owner, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || n.owner != owner {
		return false
	}
	delete(s.notes, id)
	return true
}
