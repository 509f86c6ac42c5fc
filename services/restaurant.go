package services

import (
	"context"
	"fmt"
	"strings"

	"halal-directory/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RestaurantInput is the restaurant form. LocationIDs and CuisineIDs must
// already be normalized into slices by the caller: a missing field is an
// empty slice, a single value a one-element slice.
type RestaurantInput struct {
	Name        string   `form:"name" validate:"required"`
	Summary     string   `form:"summary" validate:"omitempty,min=3"`
	LocationIDs []string `form:"location" validate:"min=1,dive,required"`
	CuisineIDs  []string `form:"cuisine" validate:"min=1,dive,required"`
}

func (in *RestaurantInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Summary = strings.TrimSpace(in.Summary)
	in.LocationIDs = trimAll(in.LocationIDs)
	in.CuisineIDs = trimAll(in.CuisineIDs)
}

func NewRestaurantInput(r *models.Restaurant) RestaurantInput {
	return RestaurantInput{
		Name:        r.Name,
		Summary:     r.Summary,
		LocationIDs: append([]string{}, r.LocationIDs...),
		CuisineIDs:  append([]string{}, r.CuisineIDs...),
	}
}

// RestaurantDetail is a restaurant with all of its outlets.
type RestaurantDetail struct {
	Restaurant *models.Restaurant
	Instances  []models.RestaurantInstance
}

// LocationOption is a location in a selection control.
type LocationOption struct {
	models.Location
	Checked bool
}

// CuisineOption is a cuisine in a selection control.
type CuisineOption struct {
	models.Cuisine
	Checked bool
}

// RestaurantForm holds the catalogs a restaurant form offers.
type RestaurantForm struct {
	Locations []LocationOption
	Cuisines  []CuisineOption
}

type RestaurantService struct {
	db     *gorm.DB
	refs   resolver
	logger *zap.Logger
}

func NewRestaurantService(db *gorm.DB, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{db: db, refs: resolver{db: db}, logger: logger}
}

// List returns every restaurant ordered by name with references resolved.
func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	if err := s.db.WithContext(ctx).Order(restaurantOrder).Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, s.refs.resolveRestaurants(ctx, restaurants)
}

// Get returns the restaurant with its locations and cuisines resolved.
func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	r, err := findByID[models.Restaurant](ctx, s.db, "Restaurant", id)
	if err != nil {
		return nil, err
	}
	rs := []models.Restaurant{*r}
	if err := s.refs.resolveRestaurants(ctx, rs); err != nil {
		return nil, err
	}
	return &rs[0], nil
}

func (s *RestaurantService) Detail(ctx context.Context, id string) (*RestaurantDetail, error) {
	var d RestaurantDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Restaurant, err = s.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Instances, err = s.refs.instances(gctx, "restaurant_instances.restaurant_id = ?", id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// FormOptions returns every location and cuisine, flagging the ones in the
// given selections.
func (s *RestaurantService) FormOptions(ctx context.Context, locationIDs, cuisineIDs []string) (*RestaurantForm, error) {
	var locations []models.Location
	var cuisines []models.Cuisine
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Order(locationOrder).Find(&locations).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Order(cuisineOrder).Find(&cuisines).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load restaurant form options: %w", err)
	}

	selectedLoc := make(map[string]bool, len(locationIDs))
	for _, id := range locationIDs {
		selectedLoc[id] = true
	}
	selectedCui := make(map[string]bool, len(cuisineIDs))
	for _, id := range cuisineIDs {
		selectedCui[id] = true
	}

	form := &RestaurantForm{
		Locations: make([]LocationOption, len(locations)),
		Cuisines:  make([]CuisineOption, len(cuisines)),
	}
	for i, l := range locations {
		form.Locations[i] = LocationOption{Location: l, Checked: selectedLoc[l.ID]}
	}
	for i, c := range cuisines {
		form.Cuisines[i] = CuisineOption{Cuisine: c, Checked: selectedCui[c.ID]}
	}
	return form, nil
}

// check runs the form rules and then confirms that every referenced
// location and cuisine exists.
func (s *RestaurantService) check(ctx context.Context, in RestaurantInput) error {
	verr, err := checkStruct(in)
	if err != nil {
		return err
	}

	var missingLoc, missingCui []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		missingLoc, err = s.refs.missing(gctx, &models.Location{}, in.LocationIDs)
		return err
	})
	g.Go(func() (err error) {
		missingCui, err = s.refs.missing(gctx, &models.Cuisine{}, in.CuisineIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if len(missingLoc) > 0 {
		verr.Add("location", "Selected location does not exist.")
	}
	if len(missingCui) > 0 {
		verr.Add("cuisine", "Selected cuisine does not exist.")
	}
	return verr.orNil()
}

func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*models.Restaurant, error) {
	in.Normalize()
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}

	restaurant := models.Restaurant{Name: in.Name, Summary: in.Summary}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}
		return replaceLinks(tx, restaurant.ID, in)
	})
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	restaurant.LocationIDs = uniqueNonEmpty(in.LocationIDs)
	restaurant.CuisineIDs = uniqueNonEmpty(in.CuisineIDs)
	s.logger.Info("restaurant created", zap.String("id", restaurant.ID), zap.String("name", restaurant.Name))
	return &restaurant, nil
}

// Update overwrites every field, including both reference sets. A missing
// id is reported before any form message.
func (s *RestaurantService) Update(ctx context.Context, id string, in RestaurantInput) (*models.Restaurant, error) {
	restaurant, err := findByID[models.Restaurant](ctx, s.db, "Restaurant", id)
	if err != nil {
		return nil, err
	}

	in.Normalize()
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(restaurant).Updates(map[string]any{
			"name":    in.Name,
			"summary": in.Summary,
		}).Error
		if err != nil {
			return err
		}
		return replaceLinks(tx, id, in)
	})
	if err != nil {
		return nil, fmt.Errorf("update restaurant %s: %w", id, err)
	}
	restaurant.Name, restaurant.Summary = in.Name, in.Summary
	restaurant.LocationIDs = uniqueNonEmpty(in.LocationIDs)
	restaurant.CuisineIDs = uniqueNonEmpty(in.CuisineIDs)
	s.logger.Info("restaurant updated", zap.String("id", id))
	return restaurant, nil
}

// replaceLinks swaps the restaurant's reference sets for the submitted ones,
// keeping submission order.
func replaceLinks(tx *gorm.DB, restaurantID string, in RestaurantInput) error {
	if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.RestaurantLocation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.RestaurantCuisine{}).Error; err != nil {
		return err
	}

	var locLinks []models.RestaurantLocation
	for i, id := range uniqueNonEmpty(in.LocationIDs) {
		locLinks = append(locLinks, models.RestaurantLocation{RestaurantID: restaurantID, LocationID: id, Position: i})
	}
	var cuiLinks []models.RestaurantCuisine
	for i, id := range uniqueNonEmpty(in.CuisineIDs) {
		cuiLinks = append(cuiLinks, models.RestaurantCuisine{RestaurantID: restaurantID, CuisineID: id, Position: i})
	}
	if len(locLinks) > 0 {
		if err := tx.Create(&locLinks).Error; err != nil {
			return err
		}
	}
	if len(cuiLinks) > 0 {
		if err := tx.Create(&cuiLinks).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a restaurant without outlets, together with its link rows.
// A restaurant with outlets yields a ConflictError listing them.
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	d, err := s.Detail(ctx, id)
	if err != nil {
		return err
	}
	if len(d.Instances) > 0 {
		return &ConflictError{Entity: "Restaurant", ID: id, Instances: d.Instances}
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.RestaurantLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.RestaurantCuisine{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Restaurant{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete restaurant %s: %w", id, err)
	}
	s.logger.Info("restaurant deleted", zap.String("id", id))
	return nil
}

func (s *RestaurantService) Count(ctx context.Context) (int64, error) {
	return s.refs.count(ctx, &models.Restaurant{})
}
