package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/pkg/errors"
)

var (
	// ErrContactNotFound is returned when no contact has the requested id.
	ErrContactNotFound = errors.New("repository: contact not found")

	// ErrContactExists is returned by Add when the supplied id is taken.
	ErrContactExists = errors.New("repository: contact already exists")

	// ErrInvalidContactID is returned for negative ids.
	ErrInvalidContactID = errors.New("repository: invalid contact id")
)

// ContactRepository is the storage contract for contacts.
//
// Contacts are passed and returned by value: callers never share memory
// with the stored entries.
type ContactRepository interface {
	// GetAll returns every contact ordered by id.
	GetAll(ctx context.Context) ([]model.Contact, error)

	// Get returns ErrContactNotFound when id is unknown.
	Get(ctx context.Context, id int) (model.Contact, error)

	// Add stores c. A zero ContactID is replaced by the next free id, a
	// positive one is kept unless it is taken (ErrContactExists).
	Add(ctx context.Context, c model.Contact) (model.Contact, error)

	// Update replaces the contact with id c.ContactID entirely.
	// Unknown ids yield ErrContactNotFound and change nothing.
	Update(ctx context.Context, c model.Contact) error

	// Delete removes the contact if present. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id int) error

	// Count returns the number of stored contacts.
	Count() int

	// Ping reports whether the store can serve requests.
	Ping(ctx context.Context) error
}

// InMemoryContactRepository implements [ContactRepository] on a map guarded
// by a single lock.
type InMemoryContactRepository struct {
	mu       sync.RWMutex
	contacts map[int]model.Contact
	nextID   int
}

var _ ContactRepository = (*InMemoryContactRepository)(nil)

// NewInMemoryContactRepository returns an empty store.
func NewInMemoryContactRepository() *InMemoryContactRepository {
	return &InMemoryContactRepository{
		contacts: make(map[int]model.Contact),
		nextID:   1,
	}
}

// Seed adds cs in order, assigning ids to zero-id entries. It stops at the
// first entry Add would reject and reports it; earlier entries stay stored.
func (r *InMemoryContactRepository) Seed(cs ...model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range cs {
		if _, err := r.add(c); err != nil {
			return errors.Wrapf(err, "seed contact %d", i)
		}
	}
	return nil
}

func (r *InMemoryContactRepository) GetAll(_ context.Context) ([]model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]model.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		contacts = append(contacts, c)
	}
	slices.SortFunc(contacts, func(a, b model.Contact) int {
		return cmp.Compare(a.ContactID, b.ContactID)
	})

	return contacts, nil
}

func (r *InMemoryContactRepository) Get(_ context.Context, id int) (model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[id]
	if !ok {
		return model.Contact{}, ErrContactNotFound
	}
	return c, nil
}

func (r *InMemoryContactRepository) Add(_ context.Context, c model.Contact) (model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.add(c)
}

// add must be called with mu held.
func (r *InMemoryContactRepository) add(c model.Contact) (model.Contact, error) {
	switch {
	case c.ContactID < 0:
		return model.Contact{}, ErrInvalidContactID

	case c.ContactID == 0:
		for {
			if _, taken := r.contacts[r.nextID]; !taken {
				break
			}
			r.nextID++
		}
		c.ContactID = r.nextID
		r.nextID++

	default:
		if _, taken := r.contacts[c.ContactID]; taken {
			return model.Contact{}, ErrContactExists
		}
		r.nextID = max(r.nextID, c.ContactID+1)
	}

	r.contacts[c.ContactID] = c
	return c, nil
}

func (r *InMemoryContactRepository) Update(_ context.Context, c model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[c.ContactID]; !ok {
		return ErrContactNotFound
	}
	r.contacts[c.ContactID] = c
	return nil
}

func (r *InMemoryContactRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.contacts, id)
	return nil
}

func (r *InMemoryContactRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.contacts)
}

// Ping only fails when ctx is already done; the map is always reachable.
func (r *InMemoryContactRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
