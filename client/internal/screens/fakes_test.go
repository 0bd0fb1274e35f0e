package screens

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
	"github.com/Skotchmaster/inventory/client/internal/remote"
)

type fakeStore struct {
	mu      sync.Mutex
	records []inventory.Record
	nextID  int

	listErr   error
	insertErr error
	updateErr error
	deleteErr error

	listCalls int
	inserted  []inventory.Fields
	updated   map[string]inventory.Fields
	deleted   []string
}

func newFakeStore(records ...inventory.Record) *fakeStore {
	return &fakeStore{records: records, updated: map[string]inventory.Fields{}}
}

func (s *fakeStore) ListRecords(ctx context.Context, kind string) ([]inventory.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]inventory.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *fakeStore) InsertRecord(ctx context.Context, kind string, f inventory.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, f)
	if s.insertErr != nil {
		return s.insertErr
	}
	s.nextID++
	s.records = append(s.records, inventory.Record{ID: "new-" + strconv.Itoa(s.nextID), Name: f.Name, Quantity: f.Quantity, Price: f.Price})
	return nil
}

func (s *fakeStore) UpdateRecord(ctx context.Context, kind, id string, f inventory.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated[id] = f
	return s.updateErr
}

func (s *fakeStore) DeleteRecord(ctx context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return nil
}

type fakeAuth struct {
	mu sync.Mutex

	signInErr      error
	signUpErr      error
	signOutErr     error
	currentUserErr error
	user           remote.User

	signInCalls  int
	signUpCalls  int
	signOutCalls int
}

func (a *fakeAuth) SignIn(ctx context.Context, email, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signInCalls++
	return a.signInErr
}

func (a *fakeAuth) SignUp(ctx context.Context, email, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signUpCalls++
	return a.signUpErr
}

func (a *fakeAuth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signOutCalls++
	return a.signOutErr
}

func (a *fakeAuth) CurrentUser(ctx context.Context) (remote.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentUserErr != nil {
		return remote.User{}, a.currentUserErr
	}
	return a.user, nil
}

func remoteErr(op string, status int, msg string) error {
	return &remote.RemoteError{Op: op, Status: status, Message: msg}
}

var errBoom = errors.New("boom")
