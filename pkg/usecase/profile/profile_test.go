package profile_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kith/pkg/adapter"
	"github.com/m-mizutani/kith/pkg/model"
	"github.com/m-mizutani/kith/pkg/repository"
	"github.com/m-mizutani/kith/pkg/usecase/profile"
)

func setup(t *testing.T) (*profile.UseCase, *repository.Profile) {
	t.Helper()
	repo := repository.NewProfile(repository.NewStorage(adapter.NewMemory()))
	return profile.New(repo), repo
}

var validInput = profile.Input{
	Name:        "Me",
	Age:         "30",
	PhoneNumber: "000-0000",
	Address:     "Home",
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	uc, repo := setup(t)

	gt.True(t, repo.GetUserDetails(ctx) == nil)

	details, err := uc.Init(ctx)
	gt.NoError(t, err)
	gt.Equal(t, details.Name, "")
	gt.A(t, details.Locations).Length(0)
	gt.V(t, repo.GetUserDetails(ctx)).NotNil()

	// a second call keeps what is already there
	_, err = uc.Save(ctx, validInput)
	gt.NoError(t, err)
	again, err := uc.Init(ctx)
	gt.NoError(t, err)
	gt.Equal(t, again.Name, "Me")
}

func TestShowAbsent(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Show(context.Background())
	gt.True(t, errors.Is(err, model.ErrUserDetailsNotFound))
}

func TestSaveRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	uc, repo := setup(t)

	in := validInput
	in.Age = " "
	_, err := uc.Save(ctx, in)
	gt.True(t, errors.Is(err, model.ErrInvalidInput))
	gt.True(t, repo.GetUserDetails(ctx) == nil)
}

func TestSaveKeepsLocations(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	_, err := uc.Save(ctx, validInput)
	gt.NoError(t, err)
	gt.NoError(t, uc.AddLocation(ctx, "Tokyo"))

	in := validInput
	in.Address = "New Home"
	saved, err := uc.Save(ctx, in)
	gt.NoError(t, err)
	gt.A(t, saved.Locations).Length(1)

	got, err := uc.Show(ctx)
	gt.NoError(t, err)
	gt.Equal(t, got.Address, "New Home")
	gt.A(t, got.Locations).Length(1)
	gt.Equal(t, got.Locations[0].Address, "Tokyo")
}

// locationAfterRead records a location right after each profile read and
// hands back the copy taken before it
type locationAfterRead struct {
	*repository.Profile
	added int
}

func (r *locationAfterRead) GetUserDetails(ctx context.Context) *model.UserDetails {
	details := r.Profile.GetUserDetails(ctx)
	if details != nil && r.Profile.AddLocation(ctx, "recorded during save") == nil {
		r.added++
	}
	return details
}

func TestSaveKeepsLocationRecordedDuringSave(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)
	w := &locationAfterRead{Profile: repo}
	uc := profile.New(w)

	gt.NoError(t, repo.UpdateUserDetails(ctx, &model.UserDetails{
		Name: "Me", Age: "30", PhoneNumber: "000-0000", Address: "Home",
	}))
	gt.NoError(t, repo.AddLocation(ctx, "Tokyo"))

	in := validInput
	in.Address = "New Home"
	_, err := uc.Save(ctx, in)
	gt.NoError(t, err)

	got := repo.GetUserDetails(ctx)
	gt.Equal(t, got.Address, "New Home")
	gt.A(t, got.Locations).Length(1 + w.added)
	gt.Equal(t, got.Locations[len(got.Locations)-1].Address, "Tokyo")
}

func TestAddLocation(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	err := uc.AddLocation(ctx, "Tokyo")
	gt.True(t, errors.Is(err, model.ErrUserDetailsNotFound))

	_, err = uc.Init(ctx)
	gt.NoError(t, err)

	gt.True(t, errors.Is(uc.AddLocation(ctx, "  "), model.ErrInvalidInput))
	gt.NoError(t, uc.AddLocation(ctx, "Tokyo"))
}

func TestTrack(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	_, err := uc.Init(ctx)
	gt.NoError(t, err)

	loc, err := uc.Track(ctx, 35.681236, 139.767125, "")
	gt.NoError(t, err)
	gt.Equal(t, loc.Address, "35.681236, 139.767125")

	_, err = uc.Track(ctx, 34.702485, 135.495951, "Osaka Station")
	gt.NoError(t, err)

	details, err := uc.Show(ctx)
	gt.NoError(t, err)
	gt.A(t, details.Locations).Length(2)
	gt.Equal(t, details.Locations[0].Address, "Osaka Station")
	gt.True(t, details.Locations[0].HasCoordinates())
	gt.Equal(t, *details.Locations[1].Latitude, 35.681236)

	_, err = uc.Track(ctx, 91, 0, "")
	gt.True(t, errors.Is(err, model.ErrInvalidInput))
	_, err = uc.Track(ctx, 0, -181, "")
	gt.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestTrackRejectsNonFinite(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	_, err := uc.Init(ctx)
	gt.NoError(t, err)

	for _, c := range []struct {
		name     string
		lat, lon float64
	}{
		{"nan latitude", math.NaN(), 0},
		{"nan longitude", 0, math.NaN()},
		{"infinite latitude", math.Inf(1), 0},
		{"infinite longitude", 0, math.Inf(-1)},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.Track(ctx, c.lat, c.lon, "somewhere")
			gt.True(t, errors.Is(err, model.ErrInvalidInput))
			gt.False(t, errors.Is(err, model.ErrEncode))
		})
	}

	details, err := uc.Show(ctx)
	gt.NoError(t, err)
	gt.A(t, details.Locations).Length(0)
}

func TestTrackHistoryCap(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	_, err := uc.Init(ctx)
	gt.NoError(t, err)

	for i := 0; i < model.MaxLocations+5; i++ {
		_, err := uc.Track(ctx, 0, float64(i), fmt.Sprintf("place-%d", i))
		gt.NoError(t, err)
	}

	details, err := uc.Show(ctx)
	gt.NoError(t, err)
	gt.A(t, details.Locations).Length(model.MaxLocations)
	gt.Equal(t, details.Locations[0].Address, fmt.Sprintf("place-%d", model.MaxLocations+4))
	gt.Equal(t, details.Locations[model.MaxLocations-1].Address, "place-5")
}

func TestSearchLocations(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	_, err := uc.SearchLocations(ctx, "x")
	gt.True(t, errors.Is(err, model.ErrUserDetailsNotFound))

	_, err = uc.Init(ctx)
	gt.NoError(t, err)
	for _, addr := range []string{"Shibuya, Tokyo", "Umeda, Osaka", "Tokyo Station"} {
		gt.NoError(t, uc.AddLocation(ctx, addr))
	}

	found, err := uc.SearchLocations(ctx, "tokyo")
	gt.NoError(t, err)
	gt.A(t, found).Length(2)
	gt.Equal(t, found[0].Address, "Tokyo Station")
	gt.Equal(t, found[1].Address, "Shibuya, Tokyo")

	all, err := uc.SearchLocations(ctx, "")
	gt.NoError(t, err)
	gt.A(t, all).Length(3)
}
