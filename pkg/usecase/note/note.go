package note

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/interfaces"
	"github.com/m-mizutani/kith/pkg/model"
)

// UseCase provides note-related operations
type UseCase struct {
	repo interfaces.PeopleRepository
}

// New creates a new note UseCase instance
func New(repo interfaces.PeopleRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Add attaches a note to a person. Blank text is rejected before the store
// is touched.
func (u *UseCase) Add(ctx context.Context, personID model.PersonID, text string) (*model.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "note text is empty", goerr.V("person", personID))
	}
	return u.repo.AddNote(ctx, personID, text)
}

// List returns a person's notes, newest first
func (u *UseCase) List(ctx context.Context, personID model.PersonID) ([]*model.Note, error) {
	p, err := u.repo.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	return p.Notes, nil
}

// Entry is a note together with the person who owns it
type Entry struct {
	ID             model.NoteID   `json:"id"`
	Text           string         `json:"text"`
	Timestamp      time.Time      `json:"timestamp"`
	PersonID       model.PersonID `json:"personId"`
	PersonName     string         `json:"personName"`
	PersonRelation string         `json:"personRelation"`
	PersonTag      model.Tag      `json:"personTag"`
}

// FeedOptions contains options for Feed
type FeedOptions struct {
	// Tag limits entries to people with this tag when set
	Tag   model.Tag
	Limit int
}

// Feed gathers notes of every person into one list, newest first
func (u *UseCase) Feed(ctx context.Context, opts FeedOptions) ([]*Entry, error) {
	if opts.Tag != "" {
		if err := opts.Tag.Validate(); err != nil {
			return nil, err
		}
	}

	entries := []*Entry{}
	for _, p := range u.repo.ListPeople(ctx) {
		if opts.Tag != "" && p.Tag != opts.Tag {
			continue
		}
		for _, n := range p.Notes {
			entries = append(entries, &Entry{
				ID:             n.ID,
				Text:           n.Text,
				Timestamp:      n.Timestamp,
				PersonID:       p.ID,
				PersonName:     p.Name,
				PersonRelation: p.Relation,
				PersonTag:      p.Tag,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}
