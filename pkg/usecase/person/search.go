package person

import (
	"context"
	"strings"

	"github.com/m-mizutani/kith/pkg/model"
)

// Search returns people matching query in name, relation or description.
// A blank query lists everyone.
func (u *UseCase) Search(ctx context.Context, query string, opts ListOptions) ([]*model.Person, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.List(ctx, opts)
	}
	if opts.Tag != "" {
		if err := opts.Tag.Validate(); err != nil {
			return nil, err
		}
	}
	if err := opts.Sort.Validate(); err != nil {
		return nil, err
	}

	return arrange(u.repo.SearchPeople(ctx, query), opts), nil
}
