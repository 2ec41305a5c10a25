package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
)

// Profile stores the singleton UserDetails under KeyUserDetails
type Profile struct {
	storage *Storage
	opts    *options
	mu      sync.Mutex
}

// NewProfile creates a Profile repository on top of storage
func NewProfile(storage *Storage, opts ...Option) *Profile {
	return &Profile{
		storage: storage,
		opts:    newOptions(opts),
	}
}

func (r *Profile) load(ctx context.Context) *model.UserDetails {
	details := loadRecord[model.UserDetails](ctx, r.storage, KeyUserDetails)
	if details != nil && details.Locations == nil {
		details.Locations = []*model.Location{}
	}
	return details
}

// GetUserDetails returns the saved profile, or nil if there is none
func (r *Profile) GetUserDetails(ctx context.Context) *model.UserDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// UpdateUserDetails replaces the whole profile. Callers must pass the current
// locations along or the history is lost. Only the newest MaxLocations
// entries are kept.
func (r *Profile) UpdateUserDetails(ctx context.Context, details *model.UserDetails) error {
	if details == nil {
		return goerr.Wrap(model.ErrInvalidInput, "user details is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record := *details
	if record.Locations == nil {
		record.Locations = []*model.Location{}
	}
	record.TrimLocations()
	if err := save(ctx, r.storage, KeyUserDetails, &record); err != nil {
		return goerr.Wrap(err, "failed to update user details")
	}
	return nil
}

// ModifyUserDetails lets fn change the profile and writes it back while
// holding the repository lock, so locations recorded concurrently are not
// lost. When no profile exists fn receives an empty one, which is created.
// An error from fn aborts the write.
func (r *Profile) ModifyUserDetails(ctx context.Context, fn func(details *model.UserDetails) error) (*model.UserDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	details := r.load(ctx)
	if details == nil {
		details = &model.UserDetails{Locations: []*model.Location{}}
	}
	if err := fn(details); err != nil {
		return nil, err
	}
	if details.Locations == nil {
		details.Locations = []*model.Location{}
	}
	details.TrimLocations()

	if err := save(ctx, r.storage, KeyUserDetails, details); err != nil {
		return nil, goerr.Wrap(err, "failed to modify user details")
	}
	return details, nil
}

// AddLocation records an address without coordinates at the head of the
// history. Fails with ErrUserDetailsNotFound when no profile exists.
func (r *Profile) AddLocation(ctx context.Context, address string) error {
	return r.push(ctx, &model.Location{Address: address})
}

// RecordLocation records loc at the head of the history. A zero Timestamp
// is filled with the current time.
func (r *Profile) RecordLocation(ctx context.Context, loc *model.Location) error {
	if loc == nil {
		return goerr.Wrap(model.ErrInvalidInput, "location is nil")
	}
	entry := *loc
	return r.push(ctx, &entry)
}

func (r *Profile) push(ctx context.Context, loc *model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	details := r.load(ctx)
	if details == nil {
		return goerr.Wrap(model.ErrUserDetailsNotFound, "profile must be saved before recording locations")
	}

	if loc.Timestamp.IsZero() {
		loc.Timestamp = r.opts.timestamp()
	}
	details.PushLocation(loc)

	if err := save(ctx, r.storage, KeyUserDetails, details); err != nil {
		return goerr.Wrap(err, "failed to record location", goerr.V("address", loc.Address))
	}
	return nil
}
