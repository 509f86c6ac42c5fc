package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"halal-directory/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("rating", validRating); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("price", validPrice); err != nil {
		panic(err)
	}
	return v
}

// validRating accepts a decimal number within the rating bounds.
func validRating(fl validator.FieldLevel) bool {
	_, ok := parseRating(fl.Field().String())
	return ok
}

func validPrice(fl validator.FieldLevel) bool {
	return models.PriceTier(fl.Field().String()).Valid()
}

// decimalPattern accepts digits with an optional fraction. strconv.ParseFloat
// alone would also take hex and exponent forms.
var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

func parseRating(s string) (float64, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, v >= models.MinRating && v <= models.MaxRating
}

// messages maps "Struct.Field" and validation tag to the text shown on the
// form. Indexed fields (slice elements) share the entry of their slice.
var messages = map[string]map[string]string{
	"CuisineInput.Name": {
		"min": "Cuisine name must be at least 3 characters long",
		"max": "Cuisine name must be at most 100 characters long",
	},
	"LocationInput.City": {
		"required": "City must be specified.",
	},
	"LocationInput.Country": {
		"required": "Country must be specified.",
		"max":      "Country must be at most 100 characters long.",
	},
	"RestaurantInput.Name": {
		"required": "Name must not be empty.",
	},
	"RestaurantInput.Summary": {
		"min": "Summary must be at least 3 characters long.",
	},
	"RestaurantInput.LocationIDs": {
		"min":      "Select at least one location.",
		"required": "Location must not be empty.",
	},
	"RestaurantInput.CuisineIDs": {
		"min":      "Select at least one cuisine.",
		"required": "Cuisine must not be empty.",
	},
	"InstanceInput.RestaurantID": {
		"required": "Restaurant must be specified",
	},
	"InstanceInput.LocationID": {
		"required": "Location must be specified",
	},
	"InstanceInput.Address": {
		"required": "Address must be specified",
	},
	"InstanceInput.Rating": {
		"rating": "Rating must be a number between 1 and 5.",
	},
	"InstanceInput.Price": {
		"required": "Price must be specified",
		"price":    "Price must be one of $, $$, $$$, $$$$.",
	},
}

// checkStruct runs the struct tags of in and converts every failure into a
// form message. It never stops at the first failure.
func checkStruct(in any) (*ValidationError, error) {
	verr := &ValidationError{}
	err := validate.Struct(in)
	if err == nil {
		return verr, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate %T: %w", in, err)
	}
	for _, fe := range fieldErrs {
		verr.Add(stripIndex(fe.Field()), messageFor(fe))
	}
	return verr, nil
}

func messageFor(fe validator.FieldError) string {
	if byTag, ok := messages[stripIndex(fe.StructNamespace())]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid.", stripIndex(fe.Field()))
}

// stripIndex turns "LocationIDs[2]" into "LocationIDs".
func stripIndex(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

// trimAll trims every element and keeps empty ones, so an empty submitted
// value is still reported as such.
func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// uniqueNonEmpty keeps the first occurrence of each non-empty id, in order.
func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
