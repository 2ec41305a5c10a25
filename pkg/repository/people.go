package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
)

// People stores the people collection as one JSON array under KeyPeople.
// Every call loads the whole collection, changes it and writes it back; the
// mutex keeps those cycles from interleaving within the process.
type People struct {
	storage *Storage
	opts    *options
	mu      sync.Mutex
}

// NewPeople creates a People repository on top of storage
func NewPeople(storage *Storage, opts ...Option) *People {
	return &People{
		storage: storage,
		opts:    newOptions(opts),
	}
}

func (r *People) load(ctx context.Context) []*model.Person {
	people := loadCollection[model.Person](ctx, r.storage, KeyPeople)
	for _, p := range people {
		if p.Notes == nil {
			p.Notes = []*model.Note{}
		}
	}
	return people
}

func (r *People) save(ctx context.Context, people []*model.Person) error {
	return save(ctx, r.storage, KeyPeople, people)
}

func indexOf(people []*model.Person, id model.PersonID) int {
	for i, p := range people {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id model.PersonID) error {
	return goerr.Wrap(model.ErrPersonNotFound, "no person with the ID", goerr.V("id", id))
}

// ListPeople returns every person in insertion order. Empty when the store
// holds nothing or cannot be read.
func (r *People) ListPeople(ctx context.Context) []*model.Person {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetPerson retrieves one person by ID
func (r *People) GetPerson(ctx context.Context, id model.PersonID) (*model.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.load(ctx)
	idx := indexOf(people, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	return people[idx], nil
}

// AddPerson appends a new person with a fresh ID and an empty note list.
// Input is stored as given; validation belongs to the caller.
func (r *People) AddPerson(ctx context.Context, input model.PersonInput) (*model.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lastVisited := input.LastVisited
	if lastVisited.IsZero() {
		lastVisited = r.opts.timestamp()
	}

	person := &model.Person{
		ID:          model.NewPersonID(),
		Name:        input.Name,
		Relation:    input.Relation,
		Tag:         input.Tag,
		Description: input.Description,
		Image:       input.Image,
		LastVisited: lastVisited,
		Notes:       []*model.Note{},
	}

	people := append(r.load(ctx), person)
	if err := r.save(ctx, people); err != nil {
		return nil, goerr.Wrap(err, "failed to add person", goerr.V("name", input.Name))
	}
	return person, nil
}

// UpdatePerson replaces the stored person that has the same ID. The position
// in the collection is kept. An unknown ID returns ErrPersonNotFound and
// nothing is written.
func (r *People) UpdatePerson(ctx context.Context, person *model.Person) error {
	if person == nil {
		return goerr.Wrap(model.ErrInvalidInput, "person is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.load(ctx)
	idx := indexOf(people, person.ID)
	if idx < 0 {
		return notFound(person.ID)
	}

	updated := *person
	if updated.Notes == nil {
		updated.Notes = []*model.Note{}
	}
	people[idx] = &updated

	if err := r.save(ctx, people); err != nil {
		return goerr.Wrap(err, "failed to update person", goerr.V("id", person.ID))
	}
	return nil
}

// ModifyPerson loads the person with id, lets fn change it and writes the
// result back, all while holding the repository lock. An error from fn
// aborts the write and is returned as is. ID changes made by fn are ignored.
func (r *People) ModifyPerson(ctx context.Context, id model.PersonID, fn func(p *model.Person) error) (*model.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.load(ctx)
	idx := indexOf(people, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	person := people[idx]
	if err := fn(person); err != nil {
		return nil, err
	}
	person.ID = id
	if person.Notes == nil {
		person.Notes = []*model.Note{}
	}

	if err := r.save(ctx, people); err != nil {
		return nil, goerr.Wrap(err, "failed to modify person", goerr.V("id", id))
	}
	return person, nil
}

// DeletePerson removes a person and the notes they own. An unknown ID
// returns ErrPersonNotFound and leaves the collection untouched.
func (r *People) DeletePerson(ctx context.Context, id model.PersonID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.load(ctx)
	idx := indexOf(people, id)
	if idx < 0 {
		return notFound(id)
	}

	people = append(people[:idx], people[idx+1:]...)
	if err := r.save(ctx, people); err != nil {
		return goerr.Wrap(err, "failed to delete person", goerr.V("id", id))
	}
	return nil
}

// AddNote puts a new note at the head of the person's notes and sets
// LastVisited to the note time. Empty text is the caller's concern.
func (r *People) AddNote(ctx context.Context, id model.PersonID, text string) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.load(ctx)
	idx := indexOf(people, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	now := r.opts.timestamp()
	note := &model.Note{
		ID:        model.NewNoteID(),
		Text:      text,
		Timestamp: now,
	}
	people[idx].PushNote(note)
	people[idx].LastVisited = now

	if err := r.save(ctx, people); err != nil {
		return nil, goerr.Wrap(err, "failed to add note", goerr.V("id", id))
	}
	return note, nil
}

// SearchPeople returns, in stored order, people whose name, relation or
// description contains query case-insensitively
func (r *People) SearchPeople(ctx context.Context, query string) []*model.Person {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []*model.Person{}
	for _, p := range r.load(ctx) {
		if p.Matches(query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// UpdateLastVisited sets the person's LastVisited to now
func (r *People) UpdateLastVisited(ctx context.Context, id model.PersonID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.load(ctx)
	idx := indexOf(people, id)
	if idx < 0 {
		return notFound(id)
	}

	people[idx].LastVisited = r.opts.timestamp()
	if err := r.save(ctx, people); err != nil {
		return goerr.Wrap(err, "failed to update last visited", goerr.V("id", id))
	}
	return nil
}
