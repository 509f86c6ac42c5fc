package services_test

import (
	"context"
	"strings"
	"testing"

	"halal-directory/models"
	"halal-directory/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuisineCreateTrimsAndValidates(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: "  ab  "})
	assert.Equal(t, []string{"Cuisine name must be at least 3 characters long"}, validationMessages(t, err))

	_, err = svc.Cuisines.Create(ctx, services.CuisineInput{Name: strings.Repeat("x", 101)})
	assert.Equal(t, []string{"Cuisine name must be at most 100 characters long"}, validationMessages(t, err))

	var n int64
	require.NoError(t, db.Model(&models.Cuisine{}).Count(&n).Error)
	assert.Zero(t, n, "no write on validation failure")

	c, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: "  Arab "})
	require.NoError(t, err)
	assert.Equal(t, "Arab", c.Name)
	assert.NotEmpty(t, c.ID)
}

func TestCuisineCreateIsIdempotentByName(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	first, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: "American"})
	require.NoError(t, err)
	second, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: "American"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&models.Cuisine{}).Where("name = ?", "American").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// Exact match only.
	other, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: "american"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestCuisineListIsSortedByName(t *testing.T) {
	svc, _ := newTestServices(t)
	for _, name := range []string{"Pakistani", "Arab", "Indian"} {
		mustCuisine(t, svc, name)
	}

	cuisines, err := svc.Cuisines.List(context.Background())
	require.NoError(t, err)
	var names []string
	for _, c := range cuisines {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Arab", "Indian", "Pakistani"}, names)
}

func TestCuisineUpdatePreservesID(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	id := mustCuisine(t, svc, "Indian")
	mustCuisine(t, svc, "Arab")

	updated, err := svc.Cuisines.Update(ctx, id, services.CuisineInput{Name: "South Indian"})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)

	got, err := svc.Cuisines.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "South Indian", got.Name)

	// Renaming onto an existing name is allowed.
	_, err = svc.Cuisines.Update(ctx, id, services.CuisineInput{Name: "Arab"})
	require.NoError(t, err)

	_, err = svc.Cuisines.Update(ctx, id, services.CuisineInput{Name: "x"})
	validationMessages(t, err)

	_, err = svc.Cuisines.Update(ctx, "missing", services.CuisineInput{Name: "Thai"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCuisineGetNotFound(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Cuisines.Get(context.Background(), "nope")
	var nf *services.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Cuisine", nf.Entity)
	assert.Equal(t, "nope", nf.ID)
}

func TestCuisineDeleteGuard(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	loc := mustLocation(t, svc, "Karachi", "Pakistan")
	used := mustCuisine(t, svc, "Pakistani")
	unused := mustCuisine(t, svc, "Turkish")
	mustRestaurant(t, svc, "Kolachi", []string{loc}, []string{used})

	err := svc.Cuisines.Delete(ctx, used)
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Restaurants, 1)
	assert.Equal(t, "Kolachi", conflict.Restaurants[0].Name)

	_, err = svc.Cuisines.Get(ctx, used)
	require.NoError(t, err, "storage unchanged after rejected delete")

	require.NoError(t, svc.Cuisines.Delete(ctx, unused))
	_, err = svc.Cuisines.Get(ctx, unused)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, svc.Cuisines.Delete(ctx, unused), services.ErrNotFound)
}

func TestCuisineDetailListsRestaurants(t *testing.T) {
	svc, _ := newTestServices(t)
	loc := mustLocation(t, svc, "Raleigh", "United States")
	arab := mustCuisine(t, svc, "Arab")
	mustRestaurant(t, svc, "Meat & Bite", []string{loc}, []string{arab})
	mustRestaurant(t, svc, "Adel's", []string{loc}, []string{arab})

	d, err := svc.Cuisines.Detail(context.Background(), arab)
	require.NoError(t, err)
	assert.Equal(t, "Arab", d.Cuisine.Name)
	require.Len(t, d.Restaurants, 2)
	assert.Equal(t, "Adel's", d.Restaurants[0].Name)
	assert.Equal(t, "Meat & Bite", d.Restaurants[1].Name)
}
