// Package seed loads a small sample directory through the services, so the
// sample data passes the same validation as form submissions.
package seed

import (
	"context"
	"fmt"

	"halal-directory/services"

	"go.uber.org/zap"
)

type location struct{ city, state, country string }

type restaurant struct {
	name      string
	locations []int
	cuisines  []int
	summary   string
}

type instance struct {
	restaurant, location int
	address              string
	rating               string
	price                string
}

var (
	locations = []location{
		{"London", "", "United Kingdom"},
		{"Karachi", "", "Pakistan"},
		{"New York", "", "United States"},
		{"Raleigh", "North Carolina", "United States"},
		{"Los Angeles", "California", "United States"},
	}
	cuisines    = []string{"Indian", "Pakistani", "Arab", "American"}
	restaurants = []restaurant{
		{"Dishoom", []int{0}, []int{0}, "Renowned for serving delicious, affordable Indian cuisine in beautifully atmospheric settings, the Dishoom restaurants need little introduction."},
		{"Kolachi", []int{1}, []int{1}, "Kolachi Restaurant is a true gem that effortlessly combines exceptional service, a captivating environment, and a symphony of flavors."},
		{"Adel's Famous Halal Food", []int{2}, []int{2}, "Adel's Famous Halal Food is the best halal cart in New York City! Serves chicken and lamb platters with rice."},
		{"Meat & Bite", []int{3}, []int{2, 3}, "Typical informal restaurant serving familiar comfort food, including pizza, burgers & burritos."},
	}
	instances = []instance{
		{0, 0, "22 Kingly St, Carnaby, London W1B 5QP, United Kingdom", "4.6", "$$"},
		{0, 0, "5 Stable St, London N1C 4AB, United Kingdom", "4.6", "$$"},
		{0, 0, "12 Upper St Martin's Ln, London WC2H 9FB, United Kingdom", "4.5", "$$"},
		{0, 0, "4 Derry St, London W8 5SE, United Kingdom", "4.7", "$$"},
		{1, 1, "Do Darya, Abdul Sattar Edhi Ave, D.H.A. Phase 8 Zone C Phase 8 Defence Housing Authority, Karachi, Karachi City, Sindh 75500, Pakistan", "4.6", "$$$"},
		{2, 2, "1221 6th Ave, New York, NY 10020", "4.4", "$"},
		{3, 3, "2908 Hillsborough St, Raleigh, NC 27607", "4.8", "$$"},
	}
)

// Result counts the records written. Skipped is set when the database
// already held data and nothing was written.
type Result struct {
	Locations, Cuisines, Restaurants, Instances int
	Skipped                                     bool
}

// Run writes the sample data into an empty directory. A directory holding
// any record is left untouched.
func Run(ctx context.Context, svc *services.Services, logger *zap.Logger) (Result, error) {
	var res Result

	counts, err := svc.Counts(ctx)
	if err != nil {
		return res, fmt.Errorf("check existing data: %w", err)
	}
	if counts != (services.Counts{}) {
		logger.Info("database not empty, skipping sample data",
			zap.Int64("restaurants", counts.Restaurants),
			zap.Int64("locations", counts.Locations),
			zap.Int64("cuisines", counts.Cuisines),
			zap.Int64("instances", counts.Instances))
		res.Skipped = true
		return res, nil
	}

	locIDs := make([]string, len(locations))
	for i, l := range locations {
		loc, err := svc.Locations.Create(ctx, services.LocationInput{City: l.city, State: l.state, Country: l.country})
		if err != nil {
			return res, fmt.Errorf("seed location %s: %w", l.city, err)
		}
		locIDs[i] = loc.ID
		res.Locations++
		logger.Debug("added location", zap.String("city", l.city))
	}

	cuiIDs := make([]string, len(cuisines))
	for i, name := range cuisines {
		c, err := svc.Cuisines.Create(ctx, services.CuisineInput{Name: name})
		if err != nil {
			return res, fmt.Errorf("seed cuisine %s: %w", name, err)
		}
		cuiIDs[i] = c.ID
		res.Cuisines++
		logger.Debug("added cuisine", zap.String("name", name))
	}

	restIDs := make([]string, len(restaurants))
	for i, r := range restaurants {
		in := services.RestaurantInput{Name: r.name, Summary: r.summary}
		for _, li := range r.locations {
			in.LocationIDs = append(in.LocationIDs, locIDs[li])
		}
		for _, ci := range r.cuisines {
			in.CuisineIDs = append(in.CuisineIDs, cuiIDs[ci])
		}
		rest, err := svc.Restaurants.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("seed restaurant %s: %w", r.name, err)
		}
		restIDs[i] = rest.ID
		res.Restaurants++
		logger.Debug("added restaurant", zap.String("name", r.name))
	}

	for _, inst := range instances {
		_, err := svc.Instances.Create(ctx, services.InstanceInput{
			RestaurantID: restIDs[inst.restaurant],
			LocationID:   locIDs[inst.location],
			Address:      inst.address,
			Rating:       inst.rating,
			Price:        inst.price,
		})
		if err != nil {
			return res, fmt.Errorf("seed instance %s: %w", inst.address, err)
		}
		res.Instances++
	}

	logger.Info("sample data loaded",
		zap.Int("locations", res.Locations),
		zap.Int("cuisines", res.Cuisines),
		zap.Int("restaurants", res.Restaurants),
		zap.Int("instances", res.Instances))
	return res, nil
}
