package services_test

import (
	"context"
	"testing"

	"halal-directory/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDirectoryLifecycle walks a location, cuisine, restaurant and outlet
// through creation, guarded deletes and teardown in dependency order.
func TestDirectoryLifecycle(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	loc, err := svc.Locations.Create(ctx, services.LocationInput{City: "Raleigh", State: "North Carolina", Country: "United States"})
	require.NoError(t, err)
	cuisine, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: "American"})
	require.NoError(t, err)
	rest, err := svc.Restaurants.Create(ctx, services.RestaurantInput{
		Name:        "Meat & Bite",
		Summary:     "Typical informal restaurant serving familiar comfort food.",
		LocationIDs: []string{loc.ID},
		CuisineIDs:  []string{cuisine.ID},
	})
	require.NoError(t, err)
	inst, err := svc.Instances.Create(ctx, services.InstanceInput{
		RestaurantID: rest.ID,
		LocationID:   loc.ID,
		Address:      "2908 Hillsborough St",
		Rating:       "4.8",
		Price:        "$$",
	})
	require.NoError(t, err)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.Counts{Restaurants: 1, Locations: 1, Cuisines: 1, Instances: 1}, counts)

	d, err := svc.Restaurants.Detail(ctx, rest.ID)
	require.NoError(t, err)
	require.Len(t, d.Instances, 1)
	assert.Equal(t, "2908 Hillsborough St", d.Instances[0].Address)

	var conflict *services.ConflictError
	require.ErrorAs(t, svc.Cuisines.Delete(ctx, cuisine.ID), &conflict)
	require.ErrorAs(t, svc.Locations.Delete(ctx, loc.ID), &conflict)
	require.ErrorAs(t, svc.Restaurants.Delete(ctx, rest.ID), &conflict)

	require.NoError(t, svc.Instances.Delete(ctx, inst.ID))
	require.NoError(t, svc.Restaurants.Delete(ctx, rest.ID))
	require.NoError(t, svc.Cuisines.Delete(ctx, cuisine.ID))
	require.NoError(t, svc.Locations.Delete(ctx, loc.ID))

	counts, err = svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.Counts{}, counts)
}

func TestUpdateOfMissingIDIsNotFoundEvenWithInvalidInput(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Cuisines.Update(ctx, "missing", services.CuisineInput{Name: "x"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.Locations.Update(ctx, "missing", services.LocationInput{})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.Restaurants.Update(ctx, "missing", services.RestaurantInput{})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.Instances.Update(ctx, "missing", services.InstanceInput{Rating: "9"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}
