package handlers

import (
	"net/http"

	"halal-directory/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RestaurantList(c *gin.Context) {
	restaurants, err := h.svc.Restaurants.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "restaurant_list.html", gin.H{
		"Title":       "Restaurant List",
		"Restaurants": restaurants,
	})
}

// RestaurantDetail shows a restaurant with all its instances.
func (h *Handler) RestaurantDetail(c *gin.Context) {
	d, err := h.svc.Restaurants.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "restaurant_detail.html", gin.H{
		"Title":      d.Restaurant.Name,
		"Restaurant": d.Restaurant,
		"Instances":  d.Instances,
	})
}

// bindRestaurant reads the restaurant form, collecting the multi-valued
// location and cuisine fields into slices.
func bindRestaurant(c *gin.Context) (services.RestaurantInput, error) {
	var in services.RestaurantInput
	if err := c.ShouldBind(&in); err != nil {
		return in, err
	}
	in.LocationIDs = formValues(c, "location")
	in.CuisineIDs = formValues(c, "cuisine")
	return in, nil
}

// renderRestaurantForm shows the form with the catalogs, checking the
// selected locations and cuisines of in.
func (h *Handler) renderRestaurantForm(c *gin.Context, status int, title string, in services.RestaurantInput, verr *services.ValidationError) {
	options, err := h.svc.Restaurants.FormOptions(c.Request.Context(), in.LocationIDs, in.CuisineIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	data := gin.H{
		"Title":      title,
		"Restaurant": in,
		"Locations":  options.Locations,
		"Cuisines":   options.Cuisines,
	}
	if verr != nil {
		data["Errors"] = verr.Errors
	}
	c.HTML(status, "restaurant_form.html", data)
}

func (h *Handler) RestaurantCreateForm(c *gin.Context) {
	h.renderRestaurantForm(c, http.StatusOK, "Create Restaurant", services.RestaurantInput{}, nil)
}

func (h *Handler) RestaurantCreate(c *gin.Context) {
	in, err := bindRestaurant(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	restaurant, err := h.svc.Restaurants.Create(c.Request.Context(), in)
	if verr, ok := asValidation(err); ok {
		h.renderRestaurantForm(c, http.StatusUnprocessableEntity, "Create Restaurant", in, verr)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, restaurant.URL())
}

func (h *Handler) RestaurantUpdateForm(c *gin.Context) {
	restaurant, err := h.svc.Restaurants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderRestaurantForm(c, http.StatusOK, "Update Restaurant", services.NewRestaurantInput(restaurant), nil)
}

func (h *Handler) RestaurantUpdate(c *gin.Context) {
	in, err := bindRestaurant(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	restaurant, err := h.svc.Restaurants.Update(c.Request.Context(), c.Param("id"), in)
	if verr, ok := asValidation(err); ok {
		h.renderRestaurantForm(c, http.StatusUnprocessableEntity, "Update Restaurant", in, verr)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, restaurant.URL())
}

func (h *Handler) RestaurantDeleteForm(c *gin.Context) {
	h.renderRestaurantDelete(c, http.StatusOK)
}

func (h *Handler) RestaurantDelete(c *gin.Context) {
	err := h.svc.Restaurants.Delete(c.Request.Context(), c.Param("id"))
	if asConflict(err) {
		h.renderRestaurantDelete(c, http.StatusConflict)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/restaurants")
}

func (h *Handler) renderRestaurantDelete(c *gin.Context, status int) {
	d, err := h.svc.Restaurants.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(status, "restaurant_delete.html", gin.H{
		"Title":      "Delete Restaurant",
		"Restaurant": d.Restaurant,
		"Instances":  d.Instances,
	})
}
