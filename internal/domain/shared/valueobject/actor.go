package valueobject

import (
	"strings"

	"github.com/google/uuid"
)

// ActorKind discriminates between members resolved against the person
// registry and members carried inline (external collaborators)
type ActorKind string

const (
	ActorInternal ActorKind = "INTERNAL"
	ActorExternal ActorKind = "EXTERNAL"
)

// Actor identifies a supervision or jury participant. Internal actors hold a
// person ID; external actors carry their identity inline. A single record
// with a discriminator is used instead of two types, so membership sets stay
// homogeneous.
type Actor struct {
	Kind      ActorKind
	PersonID  *uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Institute string
	City      string
	Country   string
	Language  string
}

// NewInternalActor creates an actor backed by the person registry
func NewInternalActor(personID uuid.UUID, firstName, lastName, email string) Actor {
	return Actor{
		Kind:      ActorInternal,
		PersonID:  &personID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

// NewExternalActor creates an actor carried inline
func NewExternalActor(firstName, lastName, email, institute, city, country, language string) Actor {
	return Actor{
		Kind:      ActorExternal,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Institute: institute,
		City:      city,
		Country:   country,
		Language:  language,
	}
}

// IsExternal reports whether the actor is an external collaborator
func (a Actor) IsExternal() bool {
	return a.Kind == ActorExternal
}

// SameIdentity reports whether two actors designate the same person:
// internal actors match on person ID, external actors on email
func (a Actor) SameIdentity(other Actor) bool {
	if a.Kind == ActorInternal && other.Kind == ActorInternal {
		return a.PersonID != nil && other.PersonID != nil && *a.PersonID == *other.PersonID
	}
	if a.Kind == ActorExternal && other.Kind == ActorExternal {
		return a.Email != "" && strings.EqualFold(a.Email, other.Email)
	}
	return false
}

// FullName returns "First Last" for display ordering
func (a Actor) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
