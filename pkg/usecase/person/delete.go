package person

import (
	"context"

	"github.com/m-mizutani/kith/pkg/model"
)

// Delete removes a person with all of their notes
func (u *UseCase) Delete(ctx context.Context, id model.PersonID) error {
	return u.repo.DeletePerson(ctx, id)
}
