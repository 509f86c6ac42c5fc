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

// LocationInput is the location form. State is optional.
type LocationInput struct {
	City    string `form:"city" validate:"required"`
	State   string `form:"state"`
	Country string `form:"country" validate:"required,max=100"`
}

func (in *LocationInput) Normalize() {
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Country = strings.TrimSpace(in.Country)
}

func NewLocationInput(l *models.Location) LocationInput {
	return LocationInput{City: l.City, State: l.StateName(), Country: l.Country}
}

// statePtr drops a blank state so it is stored as NULL.
func (in LocationInput) statePtr() *string {
	if in.State == "" {
		return nil
	}
	s := in.State
	return &s
}

// LocationDetail is a location with the outlets at it and the restaurants
// that list it.
type LocationDetail struct {
	Location    *models.Location
	Instances   []models.RestaurantInstance
	Restaurants []models.Restaurant
}

type LocationService struct {
	db     *gorm.DB
	refs   resolver
	logger *zap.Logger
}

func NewLocationService(db *gorm.DB, logger *zap.Logger) *LocationService {
	return &LocationService{db: db, refs: resolver{db: db}, logger: logger}
}

// List returns every location ordered by city, state, then country.
func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	locations := []models.Location{}
	if err := s.db.WithContext(ctx).Order(locationOrder).Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (s *LocationService) Get(ctx context.Context, id string) (*models.Location, error) {
	return findByID[models.Location](ctx, s.db, "Location", id)
}

func (s *LocationService) Detail(ctx context.Context, id string) (*LocationDetail, error) {
	var d LocationDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Location, err = s.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Instances, err = s.refs.instances(gctx, "restaurant_instances.location_id = ?", id)
		return err
	})
	g.Go(func() (err error) {
		d.Restaurants, err = s.refs.restaurantsWithLocation(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	in.Normalize()
	verr, err := checkStruct(in)
	if err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	location := models.Location{City: in.City, State: in.statePtr(), Country: in.Country}
	if err := s.db.WithContext(ctx).Create(&location).Error; err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	s.logger.Info("location created", zap.String("id", location.ID), zap.String("city", location.City))
	return &location, nil
}

func (s *LocationService) Update(ctx context.Context, id string, in LocationInput) (*models.Location, error) {
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Normalize()
	verr, err := checkStruct(in)
	if err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(location).Updates(map[string]any{
		"city":    in.City,
		"state":   in.statePtr(),
		"country": in.Country,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update location %s: %w", id, err)
	}
	location.City, location.State, location.Country = in.City, in.statePtr(), in.Country
	s.logger.Info("location updated", zap.String("id", id))
	return location, nil
}

// Delete removes a location no restaurant lists. Outlets at the location do
// not block the delete; only the restaurant reference does.
func (s *LocationService) Delete(ctx context.Context, id string) error {
	var restaurants []models.Restaurant
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		restaurants, err = s.refs.restaurantsWithLocation(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if len(restaurants) > 0 {
		return &ConflictError{Entity: "Location", ID: id, Restaurants: restaurants}
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{}).Error; err != nil {
		return fmt.Errorf("delete location %s: %w", id, err)
	}
	s.logger.Info("location deleted", zap.String("id", id))
	return nil
}

func (s *LocationService) Count(ctx context.Context) (int64, error) {
	return s.refs.count(ctx, &models.Location{})
}
