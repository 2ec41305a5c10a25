package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type PersonID string

// NewPersonID generates a new time-ordered PersonID
func NewPersonID() PersonID {
	return PersonID(newTimeID())
}

type NoteID string

// NewNoteID generates a new time-ordered NoteID
func NewNoteID() NoteID {
	return NoteID(newTimeID())
}

func newTimeID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		return uuid.New().String()
	}
	return id.String()
}

type Tag string

const (
	TagRed    Tag = "red"
	TagYellow Tag = "yellow"
	TagGreen  Tag = "green"
)

// Tags lists every valid tag in display order
var Tags = []Tag{TagRed, TagYellow, TagGreen}

// Validate checks if the tag is one of red, yellow or green
func (t Tag) Validate() error {
	switch t {
	case TagRed, TagYellow, TagGreen:
		return nil
	default:
		return goerr.Wrap(ErrInvalidTag, "tag must be red, yellow or green", goerr.V("tag", t))
	}
}

// ParseTag converts a case-insensitive string into a Tag
func ParseTag(s string) (Tag, error) {
	tag := Tag(strings.ToLower(strings.TrimSpace(s)))
	if err := tag.Validate(); err != nil {
		return "", err
	}
	return tag, nil
}

type Person struct {
	ID          PersonID  `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Relation    string    `json:"relation" yaml:"relation"`
	Tag         Tag       `json:"tag" yaml:"tag"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string    `json:"image,omitempty" yaml:"image,omitempty"`
	LastVisited time.Time `json:"lastVisited" yaml:"lastVisited"`
	Notes       []*Note   `json:"notes" yaml:"notes"`
}

// PushNote puts note at the head of the note list
func (p *Person) PushNote(note *Note) {
	p.Notes = append([]*Note{note}, p.Notes...)
}

// Matches reports whether query is a case-insensitive substring of name,
// relation or description. An empty query matches everyone.
func (p *Person) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Relation), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// PersonInput is the caller-supplied part of a new Person
type PersonInput struct {
	Name        string    `yaml:"name"`
	Relation    string    `yaml:"relation"`
	Tag         Tag       `yaml:"tag"`
	Description string    `yaml:"description,omitempty"`
	Image       string    `yaml:"image,omitempty"`
	LastVisited time.Time `yaml:"lastVisited,omitempty"`
}

// Validate checks required fields of the input
func (in *PersonInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return goerr.Wrap(ErrInvalidInput, "name is required")
	}
	if strings.TrimSpace(in.Relation) == "" {
		return goerr.Wrap(ErrInvalidInput, "relation is required")
	}
	if in.Tag == "" {
		return goerr.Wrap(ErrInvalidInput, "tag is required")
	}
	return in.Tag.Validate()
}

type Note struct {
	ID        NoteID    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
