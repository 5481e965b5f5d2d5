package service

import (
	"errors"

	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/server"
)

type Services struct {
	Contact *ContactService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	if repos == nil || repos.Contact == nil {
		return nil, errors.New("contact repository is required")
	}

	return &Services{
		Contact: NewContactService(s, repos.Contact),
	}, nil
}
