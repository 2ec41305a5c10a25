package interfaces

import (
	"context"

	"github.com/m-mizutani/kith/pkg/model"
)

// KVS is a string-keyed store of string values. Backends live in pkg/adapter.
type KVS interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend connection
	Close() error
}

// PeopleRepository defines persistence of the people collection
type PeopleRepository interface {
	// ListPeople returns every person in insertion order
	ListPeople(ctx context.Context) []*model.Person

	// GetPerson retrieves a person by ID
	GetPerson(ctx context.Context, id model.PersonID) (*model.Person, error)

	// AddPerson appends a new person with a fresh ID and no notes
	AddPerson(ctx context.Context, input model.PersonInput) (*model.Person, error)

	// UpdatePerson replaces the person with the same ID
	UpdatePerson(ctx context.Context, person *model.Person) error

	// ModifyPerson changes a person through fn as one atomic read-modify-write
	ModifyPerson(ctx context.Context, id model.PersonID, fn func(p *model.Person) error) (*model.Person, error)

	// DeletePerson removes a person together with their notes
	DeletePerson(ctx context.Context, id model.PersonID) error

	// AddNote prepends a note to a person and marks them visited
	AddNote(ctx context.Context, id model.PersonID, text string) (*model.Note, error)

	// SearchPeople returns people whose name, relation or description contains query
	SearchPeople(ctx context.Context, query string) []*model.Person

	// UpdateLastVisited sets a person's last visited time to now
	UpdateLastVisited(ctx context.Context, id model.PersonID) error
}

// ProfileRepository defines persistence of the singleton user details
type ProfileRepository interface {
	// GetUserDetails returns nil if no profile has been saved yet
	GetUserDetails(ctx context.Context) *model.UserDetails

	// UpdateUserDetails replaces the whole profile
	UpdateUserDetails(ctx context.Context, details *model.UserDetails) error

	// ModifyUserDetails changes the profile through fn as one atomic
	// read-modify-write, creating it when absent
	ModifyUserDetails(ctx context.Context, fn func(details *model.UserDetails) error) (*model.UserDetails, error)

	// AddLocation prepends an address-only location to the history
	AddLocation(ctx context.Context, address string) error

	// RecordLocation prepends a location with coordinates to the history
	RecordLocation(ctx context.Context, loc *model.Location) error
}
