package handlers

import (
	"net/http"

	"halal-directory/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) LocationList(c *gin.Context) {
	locations, err := h.svc.Locations.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "location_list.html", gin.H{
		"Title":     "Location List",
		"Locations": locations,
	})
}

// LocationDetail shows the restaurant instances found at a location.
func (h *Handler) LocationDetail(c *gin.Context) {
	d, err := h.svc.Locations.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "location_detail.html", gin.H{
		"Title":       "Halal Restaurants in " + d.Location.City,
		"Location":    d.Location,
		"Instances":   d.Instances,
		"Restaurants": d.Restaurants,
	})
}

func (h *Handler) LocationCreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "location_form.html", gin.H{
		"Title":    "Create Location",
		"Location": services.LocationInput{},
	})
}

func (h *Handler) LocationCreate(c *gin.Context) {
	var in services.LocationInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	location, err := h.svc.Locations.Create(c.Request.Context(), in)
	if verr, ok := asValidation(err); ok {
		c.HTML(http.StatusUnprocessableEntity, "location_form.html", gin.H{
			"Title":    "Create Location",
			"Location": in,
			"Errors":   verr.Errors,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, location.URL())
}

func (h *Handler) LocationUpdateForm(c *gin.Context) {
	location, err := h.svc.Locations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "location_form.html", gin.H{
		"Title":    "Update Location",
		"Location": services.NewLocationInput(location),
	})
}

func (h *Handler) LocationUpdate(c *gin.Context) {
	var in services.LocationInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	location, err := h.svc.Locations.Update(c.Request.Context(), c.Param("id"), in)
	if verr, ok := asValidation(err); ok {
		c.HTML(http.StatusUnprocessableEntity, "location_form.html", gin.H{
			"Title":    "Update Location",
			"Location": in,
			"Errors":   verr.Errors,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, location.URL())
}

func (h *Handler) LocationDeleteForm(c *gin.Context) {
	h.renderLocationDelete(c, http.StatusOK)
}

func (h *Handler) LocationDelete(c *gin.Context) {
	err := h.svc.Locations.Delete(c.Request.Context(), c.Param("id"))
	if asConflict(err) {
		h.renderLocationDelete(c, http.StatusConflict)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/locations")
}

func (h *Handler) renderLocationDelete(c *gin.Context, status int) {
	d, err := h.svc.Locations.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(status, "location_delete.html", gin.H{
		"Title":       "Delete Location",
		"Location":    d.Location,
		"Restaurants": d.Restaurants,
	})
}
