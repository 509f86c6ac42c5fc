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

// CuisineInput is the cuisine form.
type CuisineInput struct {
	Name string `form:"name" validate:"min=3,max=100"`
}

// Normalize trims the submitted values.
func (in *CuisineInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

// NewCuisineInput prefills the form from a stored cuisine.
func NewCuisineInput(c *models.Cuisine) CuisineInput {
	return CuisineInput{Name: c.Name}
}

// CuisineDetail is a cuisine with the restaurants serving it.
type CuisineDetail struct {
	Cuisine     *models.Cuisine
	Restaurants []models.Restaurant
}

type CuisineService struct {
	db     *gorm.DB
	refs   resolver
	logger *zap.Logger
}

func NewCuisineService(db *gorm.DB, logger *zap.Logger) *CuisineService {
	return &CuisineService{db: db, refs: resolver{db: db}, logger: logger}
}

// List returns every cuisine ordered by name.
func (s *CuisineService) List(ctx context.Context) ([]models.Cuisine, error) {
	cuisines := []models.Cuisine{}
	if err := s.db.WithContext(ctx).Order(cuisineOrder).Find(&cuisines).Error; err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	return cuisines, nil
}

func (s *CuisineService) Get(ctx context.Context, id string) (*models.Cuisine, error) {
	return findByID[models.Cuisine](ctx, s.db, "Cuisine", id)
}

// Detail loads the cuisine and its restaurants concurrently.
func (s *CuisineService) Detail(ctx context.Context, id string) (*CuisineDetail, error) {
	var d CuisineDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Cuisine, err = s.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Restaurants, err = s.refs.restaurantsWithCuisine(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a cuisine. Submitting a name that already exists returns
// the existing record instead of a duplicate. The lookup and the insert are
// not atomic, so two concurrent submissions can still both insert.
func (s *CuisineService) Create(ctx context.Context, in CuisineInput) (*models.Cuisine, error) {
	in.Normalize()
	verr, err := checkStruct(in)
	if err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var existing []models.Cuisine
	if err := s.db.WithContext(ctx).Where("name = ?", in.Name).Limit(1).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("find cuisine by name: %w", err)
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	cuisine := models.Cuisine{Name: in.Name}
	if err := s.db.WithContext(ctx).Create(&cuisine).Error; err != nil {
		return nil, fmt.Errorf("create cuisine: %w", err)
	}
	s.logger.Info("cuisine created", zap.String("id", cuisine.ID), zap.String("name", cuisine.Name))
	return &cuisine, nil
}

// Update renames a cuisine. A missing id is reported before any form
// message. Duplicate names are not checked here.
func (s *CuisineService) Update(ctx context.Context, id string, in CuisineInput) (*models.Cuisine, error) {
	cuisine, err := s.Get(ctx, id)
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
	if err := s.db.WithContext(ctx).Model(cuisine).Update("name", in.Name).Error; err != nil {
		return nil, fmt.Errorf("update cuisine %s: %w", id, err)
	}
	cuisine.Name = in.Name
	s.logger.Info("cuisine updated", zap.String("id", id), zap.String("name", in.Name))
	return cuisine, nil
}

// Delete removes a cuisine no restaurant references. Otherwise it returns a
// ConflictError listing those restaurants and leaves storage untouched.
func (s *CuisineService) Delete(ctx context.Context, id string) error {
	d, err := s.Detail(ctx, id)
	if err != nil {
		return err
	}
	if len(d.Restaurants) > 0 {
		return &ConflictError{Entity: "Cuisine", ID: id, Restaurants: d.Restaurants}
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Cuisine{}).Error; err != nil {
		return fmt.Errorf("delete cuisine %s: %w", id, err)
	}
	s.logger.Info("cuisine deleted", zap.String("id", id))
	return nil
}

func (s *CuisineService) Count(ctx context.Context) (int64, error) {
	return s.refs.count(ctx, &models.Cuisine{})
}
