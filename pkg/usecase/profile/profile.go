package profile

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/interfaces"
	"github.com/m-mizutani/kith/pkg/model"
)

// UseCase provides profile and location history operations
type UseCase struct {
	repo interfaces.ProfileRepository
}

// New creates a new profile UseCase instance
func New(repo interfaces.ProfileRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Init returns the stored profile, creating an empty one on first access
func (u *UseCase) Init(ctx context.Context) (*model.UserDetails, error) {
	if details := u.repo.GetUserDetails(ctx); details != nil {
		return details, nil
	}

	details, err := u.repo.ModifyUserDetails(ctx, func(*model.UserDetails) error { return nil })
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize user details")
	}
	return details, nil
}

// Show returns the stored profile or ErrUserDetailsNotFound
func (u *UseCase) Show(ctx context.Context) (*model.UserDetails, error) {
	details := u.repo.GetUserDetails(ctx)
	if details == nil {
		return nil, goerr.Wrap(model.ErrUserDetailsNotFound, "no profile saved yet")
	}
	return details, nil
}

// Input is the editable part of the profile
type Input struct {
	Name        string
	Age         string
	PhoneNumber string
	Address     string
}

// Save writes the profile fields. All fields are required. The stored
// location history is kept as it is at write time.
func (u *UseCase) Save(ctx context.Context, input Input) (*model.UserDetails, error) {
	fields := model.UserDetails{
		Name:        strings.TrimSpace(input.Name),
		Age:         strings.TrimSpace(input.Age),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Address:     strings.TrimSpace(input.Address),
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	return u.repo.ModifyUserDetails(ctx, func(details *model.UserDetails) error {
		details.Name = fields.Name
		details.Age = fields.Age
		details.PhoneNumber = fields.PhoneNumber
		details.Address = fields.Address
		return nil
	})
}
