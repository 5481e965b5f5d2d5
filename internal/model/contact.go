// Package model holds the entities exchanged between the HTTP layer,
// the service layer and the repositories.
package model

// Contact is a person the service knows how to reach.
//
// ContactID is owned by the repository: zero asks the repository to assign
// one, a positive value is kept as long as it is unused.
type Contact struct {
	ContactID int    `json:"contactId"       validate:"gte=0"`
	Name      string `json:"name"            validate:"required,notblank,max=100"`
	Phone     string `json:"phone"           validate:"required,notblank,max=32"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=254"`
}
