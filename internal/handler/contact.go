package handler

import (
	"strconv"

	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/service"
	"github.com/deppfellow/contacts-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// ListContactsRequest carries no input; it exists so List runs through Handle.
type ListContactsRequest struct{}

func (r *ListContactsRequest) Validate() error {
	return nil
}

// ContactIDRequest addresses a single contact by the :id path parameter.
// Any integer is accepted; ids nothing is stored under read as absent.
type ContactIDRequest struct {
	ID int `param:"id" json:"-"`
}

func (r *ContactIDRequest) Validate() error {
	return validation.Struct(r)
}

// CreateContactRequest is the POST /contacts body.
type CreateContactRequest struct {
	model.Contact
}

func (r *CreateContactRequest) Validate() error {
	return validation.Struct(r)
}

// ReplaceContactRequest is the PUT /contacts/:id body. The path id wins over
// any contactId in the body.
type ReplaceContactRequest struct {
	ID int `param:"id" json:"-"`
	model.Contact
}

func (r *ReplaceContactRequest) Validate() error {
	return validation.Struct(r)
}

// ContactHandler serves the /contacts resource.
type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

// List handles GET /contacts.
func (h *ContactHandler) List(c echo.Context, _ *ListContactsRequest) ([]model.Contact, error) {
	contacts, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return nil, repository.HandleError(err)
	}
	return contacts, nil
}

// Get handles GET /contacts/:id.
func (h *ContactHandler) Get(c echo.Context, req *ContactIDRequest) (model.Contact, error) {
	contact, err := h.contacts.Get(c.Request().Context(), req.ID)
	if err != nil {
		return model.Contact{}, repository.HandleError(err)
	}
	return contact, nil
}

// Create handles POST /contacts and points Location at the new resource.
func (h *ContactHandler) Create(c echo.Context, req *CreateContactRequest) (model.Contact, error) {
	contact, err := h.contacts.Create(c.Request().Context(), req.Contact)
	if err != nil {
		return model.Contact{}, repository.HandleError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/contacts/"+strconv.Itoa(contact.ContactID))
	return contact, nil
}

// Replace handles PUT /contacts/:id.
func (h *ContactHandler) Replace(c echo.Context, req *ReplaceContactRequest) error {
	if _, err := h.contacts.Replace(c.Request().Context(), req.ID, req.Contact); err != nil {
		return repository.HandleError(err)
	}
	return nil
}

// Delete handles DELETE /contacts/:id. Unknown ids still answer 204.
func (h *ContactHandler) Delete(c echo.Context, req *ContactIDRequest) error {
	if err := h.contacts.Delete(c.Request().Context(), req.ID); err != nil {
		return repository.HandleError(err)
	}
	return nil
}
