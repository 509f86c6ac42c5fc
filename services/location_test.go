package services_test

import (
	"context"
	"strings"
	"testing"

	"halal-directory/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationCreateStoresBlankStateAsNull(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	loc, err := svc.Locations.Create(ctx, services.LocationInput{City: " London ", State: "  ", Country: "United Kingdom"})
	require.NoError(t, err)
	assert.Equal(t, "London", loc.City)
	assert.Nil(t, loc.State)

	got, err := svc.Locations.Get(ctx, loc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.State)
	assert.Equal(t, "London, United Kingdom", got.Label())

	withState, err := svc.Locations.Create(ctx, services.LocationInput{City: "Raleigh", State: "North Carolina", Country: "United States"})
	require.NoError(t, err)
	require.NotNil(t, withState.State)
	assert.Equal(t, "Raleigh, North Carolina, United States", withState.Label())
}

func TestLocationValidationReportsEveryField(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Locations.Create(ctx, services.LocationInput{City: " ", Country: ""})
	assert.Equal(t, []string{"City must be specified.", "Country must be specified."}, validationMessages(t, err))

	_, err = svc.Locations.Create(ctx, services.LocationInput{City: "Paris", Country: strings.Repeat("F", 101)})
	assert.Equal(t, []string{"Country must be at most 100 characters long."}, validationMessages(t, err))

	n, err := svc.Locations.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLocationListOrder(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	for _, in := range []services.LocationInput{
		{City: "Raleigh", State: "North Carolina", Country: "United States"},
		{City: "London", Country: "United Kingdom"},
		{City: "Karachi", Country: "Pakistan"},
	} {
		_, err := svc.Locations.Create(ctx, in)
		require.NoError(t, err)
	}

	locations, err := svc.Locations.List(ctx)
	require.NoError(t, err)
	var cities []string
	for _, l := range locations {
		cities = append(cities, l.City)
	}
	assert.Equal(t, []string{"Karachi", "London", "Raleigh"}, cities)
}

func TestLocationUpdateClearsState(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	loc, err := svc.Locations.Create(ctx, services.LocationInput{City: "Raleigh", State: "NC", Country: "United States"})
	require.NoError(t, err)

	updated, err := svc.Locations.Update(ctx, loc.ID, services.LocationInput{City: "Durham", Country: "United States"})
	require.NoError(t, err)
	assert.Equal(t, loc.ID, updated.ID)
	assert.Nil(t, updated.State)

	got, err := svc.Locations.Get(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Durham", got.City)
	assert.Nil(t, got.State)

	_, err = svc.Locations.Update(ctx, "missing", services.LocationInput{City: "A", Country: "B"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestLocationDeleteGuard(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	used := mustLocation(t, svc, "Karachi", "Pakistan")
	free := mustLocation(t, svc, "Lahore", "Pakistan")
	cuisine := mustCuisine(t, svc, "Pakistani")
	mustRestaurant(t, svc, "Kolachi", []string{used}, []string{cuisine})

	err := svc.Locations.Delete(ctx, used)
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Restaurants, 1)
	assert.Equal(t, "Kolachi", conflict.Restaurants[0].Name)
	assert.Empty(t, conflict.Instances)

	require.NoError(t, svc.Locations.Delete(ctx, free))
	assert.ErrorIs(t, svc.Locations.Delete(ctx, free), services.ErrNotFound)
}

func TestLocationDetailListsDependents(t *testing.T) {
	svc, _ := newTestServices(t)
	loc := mustLocation(t, svc, "London", "United Kingdom")
	cuisine := mustCuisine(t, svc, "Indian")
	rest := mustRestaurant(t, svc, "Dishoom", []string{loc}, []string{cuisine})
	mustInstance(t, svc, rest, loc, "5 Stable St")
	mustInstance(t, svc, rest, loc, "22 Kingly St")

	d, err := svc.Locations.Detail(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "London", d.Location.City)
	require.Len(t, d.Restaurants, 1)
	require.Len(t, d.Instances, 2)
	assert.Equal(t, "22 Kingly St", d.Instances[0].Address)
	assert.Equal(t, "5 Stable St", d.Instances[1].Address)
	require.NotNil(t, d.Instances[0].Restaurant)
	assert.Equal(t, "Dishoom", d.Instances[0].Restaurant.Name)

	_, err = svc.Locations.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
