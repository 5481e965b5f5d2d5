package service

import (
	"context"

	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/rs/zerolog"
)

// ContactService implements the contact use cases on top of a
// repository.ContactRepository.
type ContactService struct {
	server *server.Server
	repo   repository.ContactRepository
}

func NewContactService(s *server.Server, repo repository.ContactRepository) *ContactService {
	return &ContactService{
		server: s,
		repo:   repo,
	}
}

// List returns every stored contact.
func (cs *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	return cs.repo.GetAll(ctx)
}

// Get returns repository.ErrContactNotFound for unknown ids.
func (cs *ContactService) Get(ctx context.Context, id int) (model.Contact, error) {
	return cs.repo.Get(ctx, id)
}

// Create stores a new contact and returns it with its assigned id.
func (cs *ContactService) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	created, err := cs.repo.Add(ctx, c)
	if err != nil {
		return model.Contact{}, err
	}

	cs.logger(ctx).Debug().
		Int("contact_id", created.ContactID).
		Msg("contact created")

	return created, nil
}

// Replace overwrites the contact stored under id with c.
// The id from the caller wins over c.ContactID.
func (cs *ContactService) Replace(ctx context.Context, id int, c model.Contact) (model.Contact, error) {
	c.ContactID = id
	if err := cs.repo.Update(ctx, c); err != nil {
		return model.Contact{}, err
	}

	cs.logger(ctx).Debug().
		Int("contact_id", id).
		Msg("contact replaced")

	return c, nil
}

// Delete removes the contact with id. Unknown ids are not an error.
func (cs *ContactService) Delete(ctx context.Context, id int) error {
	return cs.repo.Delete(ctx, id)
}

// Count is used by the health check.
func (cs *ContactService) Count() int {
	return cs.repo.Count()
}

// Ping reports whether the underlying store is reachable.
func (cs *ContactService) Ping(ctx context.Context) error {
	return cs.repo.Ping(ctx)
}

// logger prefers the request logger stored in ctx by the context middleware.
func (cs *ContactService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return cs.server.Logger
}
