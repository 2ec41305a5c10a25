package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// MaxLocations is the size of the location history kept in UserDetails
const MaxLocations = 50

// UserDetails is the local user's own profile. At most one exists.
type UserDetails struct {
	Name        string      `json:"name"`
	Age         string      `json:"age"`
	PhoneNumber string      `json:"phoneNumber"`
	Address     string      `json:"address"`
	Locations   []*Location `json:"locations"`
}

// Validate requires every profile field to be filled in
func (u *UserDetails) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", u.Name},
		{"age", u.Age},
		{"phoneNumber", u.PhoneNumber},
		{"address", u.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return goerr.Wrap(ErrInvalidInput, "profile field is required", goerr.V("field", f.name))
		}
	}
	return nil
}

// PushLocation prepends loc and drops the oldest entries beyond MaxLocations
func (u *UserDetails) PushLocation(loc *Location) {
	locations := make([]*Location, 0, min(len(u.Locations)+1, MaxLocations))
	locations = append(locations, loc)
	for _, l := range u.Locations {
		if len(locations) >= MaxLocations {
			break
		}
		locations = append(locations, l)
	}
	u.Locations = locations
}

// TrimLocations drops the oldest entries beyond MaxLocations. The newest
// entries are at the head.
func (u *UserDetails) TrimLocations() {
	if len(u.Locations) > MaxLocations {
		u.Locations = u.Locations[:MaxLocations]
	}
}

// Location is a visited place. Coordinates are nil when only an address was
// recorded.
type Location struct {
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}

// HasCoordinates reports whether both latitude and longitude are set
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// FormatCoordinates renders coordinates as the fallback address used when
// reverse geocoding gives nothing
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}
