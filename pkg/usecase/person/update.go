package person

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
)

// Edit holds the fields to change. nil fields are left as they are.
type Edit struct {
	Name        *string
	Relation    *string
	Tag         *model.Tag
	Description *string
	Image       *string
}

// Update applies edit to the stored person. Notes and LastVisited are kept.
func (u *UseCase) Update(ctx context.Context, id model.PersonID, edit Edit) (*model.Person, error) {
	return u.repo.ModifyPerson(ctx, id, edit.apply)
}

func (edit Edit) apply(person *model.Person) error {
	if edit.Name != nil {
		person.Name = strings.TrimSpace(*edit.Name)
	}
	if edit.Relation != nil {
		person.Relation = strings.TrimSpace(*edit.Relation)
	}
	if edit.Tag != nil {
		person.Tag = *edit.Tag
	}
	if edit.Description != nil {
		person.Description = strings.TrimSpace(*edit.Description)
	}
	if edit.Image != nil {
		person.Image = *edit.Image
	}

	check := model.PersonInput{Name: person.Name, Relation: person.Relation, Tag: person.Tag}
	if err := check.Validate(); err != nil {
		return goerr.Wrap(err, "invalid person after edit", goerr.V("id", person.ID))
	}
	return nil
}
