package person

import (
	"context"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
)

// SortOrder selects how List orders people
type SortOrder string

const (
	// SortNone keeps insertion order
	SortNone SortOrder = ""
	// SortRecent puts the most recently visited first
	SortRecent SortOrder = "recent"
	// SortName orders by name, case-insensitively
	SortName SortOrder = "name"
)

// Validate checks the sort order is known
func (s SortOrder) Validate() error {
	switch s {
	case SortNone, SortRecent, SortName:
		return nil
	default:
		return goerr.Wrap(model.ErrInvalidInput, "unknown sort order", goerr.V("sort", s))
	}
}

// ListOptions contains options for listing people
type ListOptions struct {
	// Tag limits the result to one tag when set
	Tag  model.Tag
	Sort SortOrder
}

// List returns people filtered and ordered per opts. The repository order is
// never changed; sorting happens on the returned copy.
func (u *UseCase) List(ctx context.Context, opts ListOptions) ([]*model.Person, error) {
	if opts.Tag != "" {
		if err := opts.Tag.Validate(); err != nil {
			return nil, err
		}
	}
	if err := opts.Sort.Validate(); err != nil {
		return nil, err
	}

	people := u.repo.ListPeople(ctx)
	return arrange(people, opts), nil
}

func arrange(people []*model.Person, opts ListOptions) []*model.Person {
	result := make([]*model.Person, 0, len(people))
	for _, p := range people {
		if opts.Tag == "" || p.Tag == opts.Tag {
			result = append(result, p)
		}
	}

	switch opts.Sort {
	case SortRecent:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].LastVisited.After(result[j].LastVisited)
		})
	case SortName:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
		})
	}
	return result
}
