package services

import (
	"context"
	"errors"
	"fmt"

	"halal-directory/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Sort keys for list views.
const (
	cuisineOrder    = "name asc"
	locationOrder   = "city asc, state asc, country asc"
	restaurantOrder = "name asc"
)

// resolver performs the explicit reference lookups. Every lookup is batched
// by id set; nothing is loaded lazily.
type resolver struct {
	db *gorm.DB
}

// findByID loads one row of T or returns a NotFoundError.
func findByID[T any](ctx context.Context, db *gorm.DB, entity, id string) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: entity, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", entity, id, err)
	}
	return &out, nil
}

func (r resolver) locationsByID(ctx context.Context, ids []string) (map[string]models.Location, error) {
	out := make(map[string]models.Location, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Location
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r resolver) cuisinesByID(ctx context.Context, ids []string) (map[string]models.Cuisine, error) {
	out := make(map[string]models.Cuisine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Cuisine
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load cuisines: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r resolver) restaurantsByID(ctx context.Context, ids []string) (map[string]models.Restaurant, error) {
	out := make(map[string]models.Restaurant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Restaurant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load restaurants: %w", err)
	}
	if err := r.resolveRestaurants(ctx, rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// resolveRestaurants fills the reference ids and records of rs in place.
// Dangling ids stay in LocationIDs/CuisineIDs but have no resolved record.
func (r resolver) resolveRestaurants(ctx context.Context, rs []models.Restaurant) error {
	if len(rs) == 0 {
		return nil
	}
	index := make(map[string]int, len(rs))
	ids := make([]string, len(rs))
	for i := range rs {
		ids[i] = rs[i].ID
		index[rs[i].ID] = i
		rs[i].LocationIDs, rs[i].CuisineIDs = nil, nil
		rs[i].Locations, rs[i].Cuisines = nil, nil
	}

	var locLinks []models.RestaurantLocation
	var cuiLinks []models.RestaurantCuisine
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Where("restaurant_id IN ?", ids).Order("position asc").Find(&locLinks).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Where("restaurant_id IN ?", ids).Order("position asc").Find(&cuiLinks).Error
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load restaurant links: %w", err)
	}

	locIDs := make([]string, 0, len(locLinks))
	for _, l := range locLinks {
		locIDs = append(locIDs, l.LocationID)
	}
	cuiIDs := make([]string, 0, len(cuiLinks))
	for _, l := range cuiLinks {
		cuiIDs = append(cuiIDs, l.CuisineID)
	}

	var locs map[string]models.Location
	var cuis map[string]models.Cuisine
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		locs, err = r.locationsByID(gctx, uniqueNonEmpty(locIDs))
		return err
	})
	g.Go(func() (err error) {
		cuis, err = r.cuisinesByID(gctx, uniqueNonEmpty(cuiIDs))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, l := range locLinks {
		rest := &rs[index[l.RestaurantID]]
		rest.LocationIDs = append(rest.LocationIDs, l.LocationID)
		if loc, ok := locs[l.LocationID]; ok {
			rest.Locations = append(rest.Locations, loc)
		}
	}
	for _, l := range cuiLinks {
		rest := &rs[index[l.RestaurantID]]
		rest.CuisineIDs = append(rest.CuisineIDs, l.CuisineID)
		if c, ok := cuis[l.CuisineID]; ok {
			rest.Cuisines = append(rest.Cuisines, c)
		}
	}
	return nil
}

// resolveInstances attaches each instance's restaurant (with its own
// references) and location.
func (r resolver) resolveInstances(ctx context.Context, is []models.RestaurantInstance) error {
	if len(is) == 0 {
		return nil
	}
	restIDs := make([]string, len(is))
	locIDs := make([]string, len(is))
	for i := range is {
		restIDs[i] = is[i].RestaurantID
		locIDs[i] = is[i].LocationID
	}

	var rests map[string]models.Restaurant
	var locs map[string]models.Location
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rests, err = r.restaurantsByID(gctx, uniqueNonEmpty(restIDs))
		return err
	})
	g.Go(func() (err error) {
		locs, err = r.locationsByID(gctx, uniqueNonEmpty(locIDs))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range is {
		is[i].Restaurant, is[i].Location = nil, nil
		if rest, ok := rests[is[i].RestaurantID]; ok {
			is[i].Restaurant = &rest
		}
		if loc, ok := locs[is[i].LocationID]; ok {
			is[i].Location = &loc
		}
	}
	return nil
}

// restaurantsLinkedTo returns the restaurants whose link table (link is
// RestaurantLocation or RestaurantCuisine) holds id in column, ordered by
// name and resolved.
func (r resolver) restaurantsLinkedTo(ctx context.Context, link any, column, id string) ([]models.Restaurant, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(link).Where(column+" = ?", id).Pluck("restaurant_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("find restaurants by %s: %w", column, err)
	}
	rs := []models.Restaurant{}
	if len(ids) == 0 {
		return rs, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order(restaurantOrder).Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("load restaurants by %s: %w", column, err)
	}
	return rs, r.resolveRestaurants(ctx, rs)
}

func (r resolver) restaurantsWithLocation(ctx context.Context, locationID string) ([]models.Restaurant, error) {
	return r.restaurantsLinkedTo(ctx, &models.RestaurantLocation{}, "location_id", locationID)
}

func (r resolver) restaurantsWithCuisine(ctx context.Context, cuisineID string) ([]models.Restaurant, error) {
	return r.restaurantsLinkedTo(ctx, &models.RestaurantCuisine{}, "cuisine_id", cuisineID)
}

// instances returns resolved instances ordered by restaurant name then
// address. where is an optional "column = ?" filter on restaurant_instances.
func (r resolver) instances(ctx context.Context, where string, args ...any) ([]models.RestaurantInstance, error) {
	q := r.db.WithContext(ctx).
		Model(&models.RestaurantInstance{}).
		Select("restaurant_instances.*").
		Joins("LEFT JOIN restaurants ON restaurants.id = restaurant_instances.restaurant_id")
	if where != "" {
		q = q.Where(where, args...)
	}
	is := []models.RestaurantInstance{}
	if err := q.Order("restaurants.name asc").Order("restaurant_instances.address asc").Find(&is).Error; err != nil {
		return nil, fmt.Errorf("list restaurant instances: %w", err)
	}
	return is, r.resolveInstances(ctx, is)
}

// missing returns the ids in ids that have no row in model's table.
func (r resolver) missing(ctx context.Context, model any, ids []string) ([]string, error) {
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	if err := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("check references: %w", err)
	}
	have := make(map[string]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var out []string
	for _, id := range ids {
		if !have[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r resolver) count(ctx context.Context, model any) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %T: %w", model, err)
	}
	return n, nil
}
