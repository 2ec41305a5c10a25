package person

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
)

// Show returns a person and marks them as visited, the same way opening a
// person's page does
func (u *UseCase) Show(ctx context.Context, id model.PersonID) (*model.Person, error) {
	if err := u.repo.UpdateLastVisited(ctx, id); err != nil {
		return nil, goerr.Wrap(err, "failed to mark person visited", goerr.V("id", id))
	}

	person, err := u.repo.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	return person, nil
}

// Visit sets a person's last visited time to now
func (u *UseCase) Visit(ctx context.Context, id model.PersonID) error {
	return u.repo.UpdateLastVisited(ctx, id)
}
