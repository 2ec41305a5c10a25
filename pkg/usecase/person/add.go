package person

import (
	"context"
	"strings"

	"github.com/m-mizutani/kith/pkg/model"
)

// Add validates input and stores a new person
func (u *UseCase) Add(ctx context.Context, input model.PersonInput) (*model.Person, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Relation = strings.TrimSpace(input.Relation)
	input.Description = strings.TrimSpace(input.Description)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	return u.repo.AddPerson(ctx, input)
}
