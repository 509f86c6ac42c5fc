package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"halal-directory/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// InstanceInput is the restaurant instance form. Rating stays a string so
// non-numeric input is reported as a validation message.
type InstanceInput struct {
	RestaurantID string `form:"restaurant" validate:"required"`
	LocationID   string `form:"location" validate:"required"`
	Address      string `form:"address" validate:"required"`
	Rating       string `form:"rating" validate:"omitempty,rating"`
	Price        string `form:"price" validate:"required,price"`
}

func (in *InstanceInput) Normalize() {
	in.RestaurantID = strings.TrimSpace(in.RestaurantID)
	in.LocationID = strings.TrimSpace(in.LocationID)
	in.Address = strings.TrimSpace(in.Address)
	in.Rating = strings.TrimSpace(in.Rating)
	in.Price = strings.TrimSpace(in.Price)
}

func NewInstanceInput(i *models.RestaurantInstance) InstanceInput {
	in := InstanceInput{
		RestaurantID: i.RestaurantID,
		LocationID:   i.LocationID,
		Address:      i.Address,
		Price:        string(i.Price),
	}
	if i.Rating != nil {
		in.Rating = strconv.FormatFloat(*i.Rating, 'f', -1, 64)
	}
	return in
}

// rating returns nil for an empty rating. Only call after validation.
func (in InstanceInput) rating() *float64 {
	if in.Rating == "" {
		return nil
	}
	v, _ := parseRating(in.Rating)
	return &v
}

// InstanceForm holds the catalogs an instance form offers.
type InstanceForm struct {
	Restaurants []models.Restaurant
	Locations   []models.Location
	Prices      []models.PriceTier
}

type InstanceService struct {
	db     *gorm.DB
	refs   resolver
	logger *zap.Logger
}

func NewInstanceService(db *gorm.DB, logger *zap.Logger) *InstanceService {
	return &InstanceService{db: db, refs: resolver{db: db}, logger: logger}
}

// List returns every instance ordered by restaurant name, then address.
func (s *InstanceService) List(ctx context.Context) ([]models.RestaurantInstance, error) {
	return s.refs.instances(ctx, "")
}

// Get returns the instance with its restaurant (and that restaurant's
// cuisines) and location resolved.
func (s *InstanceService) Get(ctx context.Context, id string) (*models.RestaurantInstance, error) {
	i, err := findByID[models.RestaurantInstance](ctx, s.db, "RestaurantInstance", id)
	if err != nil {
		return nil, err
	}
	is := []models.RestaurantInstance{*i}
	if err := s.refs.resolveInstances(ctx, is); err != nil {
		return nil, err
	}
	return &is[0], nil
}

func (s *InstanceService) FormOptions(ctx context.Context) (*InstanceForm, error) {
	form := &InstanceForm{Prices: models.PriceTiers}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Order(restaurantOrder).Find(&form.Restaurants).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Order(locationOrder).Find(&form.Locations).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load instance form options: %w", err)
	}
	return form, nil
}

func (s *InstanceService) check(ctx context.Context, in InstanceInput) error {
	verr, err := checkStruct(in)
	if err != nil {
		return err
	}

	var missingRest, missingLoc []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		missingRest, err = s.refs.missing(gctx, &models.Restaurant{}, []string{in.RestaurantID})
		return err
	})
	g.Go(func() (err error) {
		missingLoc, err = s.refs.missing(gctx, &models.Location{}, []string{in.LocationID})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if len(missingRest) > 0 {
		verr.Add("restaurant", "Selected restaurant does not exist.")
	}
	if len(missingLoc) > 0 {
		verr.Add("location", "Selected location does not exist.")
	}
	return verr.orNil()
}

func (s *InstanceService) Create(ctx context.Context, in InstanceInput) (*models.RestaurantInstance, error) {
	in.Normalize()
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}

	instance := models.RestaurantInstance{
		RestaurantID: in.RestaurantID,
		LocationID:   in.LocationID,
		Address:      in.Address,
		Rating:       in.rating(),
		Price:        models.PriceTier(in.Price),
	}
	if err := s.db.WithContext(ctx).Create(&instance).Error; err != nil {
		return nil, fmt.Errorf("create restaurant instance: %w", err)
	}
	s.logger.Info("restaurant instance created",
		zap.String("id", instance.ID),
		zap.String("restaurant_id", instance.RestaurantID))
	return &instance, nil
}

// Update overwrites every field of the instance. A missing id is reported
// before any form message.
func (s *InstanceService) Update(ctx context.Context, id string, in InstanceInput) (*models.RestaurantInstance, error) {
	instance, err := findByID[models.RestaurantInstance](ctx, s.db, "RestaurantInstance", id)
	if err != nil {
		return nil, err
	}

	in.Normalize()
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(instance).Updates(map[string]any{
		"restaurant_id": in.RestaurantID,
		"location_id":   in.LocationID,
		"address":       in.Address,
		"rating":        in.rating(),
		"price":         in.Price,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update restaurant instance %s: %w", id, err)
	}
	instance.RestaurantID, instance.LocationID = in.RestaurantID, in.LocationID
	instance.Address, instance.Rating, instance.Price = in.Address, in.rating(), models.PriceTier(in.Price)
	s.logger.Info("restaurant instance updated", zap.String("id", id))
	return instance, nil
}

// Delete removes an instance. Nothing references instances, so an existing
// one can always be deleted.
func (s *InstanceService) Delete(ctx context.Context, id string) error {
	if _, err := findByID[models.RestaurantInstance](ctx, s.db, "RestaurantInstance", id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.RestaurantInstance{}).Error; err != nil {
		return fmt.Errorf("delete restaurant instance %s: %w", id, err)
	}
	s.logger.Info("restaurant instance deleted", zap.String("id", id))
	return nil
}

func (s *InstanceService) Count(ctx context.Context) (int64, error) {
	return s.refs.count(ctx, &models.RestaurantInstance{})
}
