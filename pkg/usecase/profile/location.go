package profile

import (
	"context"
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
)

// AddLocation records a visited address without coordinates
func (u *UseCase) AddLocation(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return goerr.Wrap(model.ErrInvalidInput, "address is empty")
	}
	return u.repo.AddLocation(ctx, address)
}

// Track records a position reported by a location source. address is the
// reverse-geocoded place; when it is blank the coordinates are used instead.
func (u *UseCase) Track(ctx context.Context, lat, lon float64, address string) (*model.Location, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return nil, goerr.Wrap(model.ErrInvalidInput, "coordinates are not finite",
			goerr.V("latitude", lat), goerr.V("longitude", lon))
	}
	if lat < -90 || lat > 90 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "latitude out of range", goerr.V("latitude", lat))
	}
	if lon < -180 || lon > 180 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "longitude out of range", goerr.V("longitude", lon))
	}

	address = strings.TrimSpace(address)
	if address == "" {
		address = model.FormatCoordinates(lat, lon)
	}

	loc := &model.Location{
		Latitude:  &lat,
		Longitude: &lon,
		Address:   address,
	}
	if err := u.repo.RecordLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// SearchLocations returns history entries whose address contains query,
// case-insensitively, newest first. A blank query returns the whole history.
func (u *UseCase) SearchLocations(ctx context.Context, query string) ([]*model.Location, error) {
	details, err := u.Show(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	matched := []*model.Location{}
	for _, loc := range details.Locations {
		if strings.Contains(strings.ToLower(loc.Address), q) {
			matched = append(matched, loc)
		}
	}
	return matched, nil
}
