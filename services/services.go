// Package services holds the directory's entity services: validation, CRUD,
// delete guards and reference resolution over gorm.
//
// References between entities are plain id columns. Delete guards are
// explicit queries run before the delete; they are not atomic with it, so a
// reference created in between can dangle. Resolvers tolerate dangling ids.
package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Services bundles one service per entity over a shared database handle.
type Services struct {
	Cuisines    *CuisineService
	Locations   *LocationService
	Restaurants *RestaurantService
	Instances   *InstanceService
}

func New(db *gorm.DB, logger *zap.Logger) *Services {
	return &Services{
		Cuisines:    NewCuisineService(db, logger.Named("cuisines")),
		Locations:   NewLocationService(db, logger.Named("locations")),
		Restaurants: NewRestaurantService(db, logger.Named("restaurants")),
		Instances:   NewInstanceService(db, logger.Named("instances")),
	}
}

// Counts summarizes the directory for the home page.
type Counts struct {
	Restaurants int64
	Locations   int64
	Cuisines    int64
	Instances   int64
}

func (s *Services) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Restaurants, err = s.Restaurants.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Locations, err = s.Locations.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Cuisines, err = s.Cuisines.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Instances, err = s.Instances.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return c, nil
}
