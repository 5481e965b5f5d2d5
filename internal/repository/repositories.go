package repository

import (
	"github.com/deppfellow/contacts-service/internal/server"
)

// Repositories is a container for all repository instances.
//
// It is built once at startup and handed to the service layer; nothing
// in the process reaches the stores through package level state.
type Repositories struct {
	Contact ContactRepository
}

// NewRepositories constructs the repository container and registers the
// repository gauges on the server's metrics set.
func NewRepositories(s *server.Server) *Repositories {
	contacts := NewInMemoryContactRepository()

	if s != nil && s.Metrics != nil {
		s.Metrics.NewGauge("contacts_stored", func() float64 {
			return float64(contacts.Count())
		})
	}

	return &Repositories{
		Contact: contacts,
	}
}
