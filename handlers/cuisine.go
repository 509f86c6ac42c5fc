package handlers

import (
	"net/http"

	"halal-directory/services"

	"github.com/gin-gonic/gin"
)

// CuisineList shows every cuisine.
func (h *Handler) CuisineList(c *gin.Context) {
	cuisines, err := h.svc.Cuisines.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "cuisine_list.html", gin.H{
		"Title":    "Cuisine List",
		"Cuisines": cuisines,
	})
}

// CuisineDetail shows a cuisine and the restaurants serving it.
func (h *Handler) CuisineDetail(c *gin.Context) {
	d, err := h.svc.Cuisines.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "cuisine_detail.html", gin.H{
		"Title":       "Cuisine Detail",
		"Cuisine":     d.Cuisine,
		"Restaurants": d.Restaurants,
	})
}

func (h *Handler) CuisineCreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "cuisine_form.html", gin.H{
		"Title":   "Create Cuisine",
		"Cuisine": services.CuisineInput{},
	})
}

// CuisineCreate redirects to the new cuisine, or to the existing one when
// the name is already taken.
func (h *Handler) CuisineCreate(c *gin.Context) {
	var in services.CuisineInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	cuisine, err := h.svc.Cuisines.Create(c.Request.Context(), in)
	if verr, ok := asValidation(err); ok {
		c.HTML(http.StatusUnprocessableEntity, "cuisine_form.html", gin.H{
			"Title":   "Create Cuisine",
			"Cuisine": in,
			"Errors":  verr.Errors,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, cuisine.URL())
}

func (h *Handler) CuisineUpdateForm(c *gin.Context) {
	cuisine, err := h.svc.Cuisines.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "cuisine_form.html", gin.H{
		"Title":   "Update Cuisine",
		"Cuisine": services.NewCuisineInput(cuisine),
	})
}

func (h *Handler) CuisineUpdate(c *gin.Context) {
	var in services.CuisineInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	cuisine, err := h.svc.Cuisines.Update(c.Request.Context(), c.Param("id"), in)
	if verr, ok := asValidation(err); ok {
		c.HTML(http.StatusUnprocessableEntity, "cuisine_form.html", gin.H{
			"Title":   "Update Cuisine",
			"Cuisine": in,
			"Errors":  verr.Errors,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, cuisine.URL())
}

// CuisineDeleteForm asks for confirmation, or lists the restaurants that
// must go first.
func (h *Handler) CuisineDeleteForm(c *gin.Context) {
	h.renderCuisineDelete(c, http.StatusOK)
}

func (h *Handler) CuisineDelete(c *gin.Context) {
	err := h.svc.Cuisines.Delete(c.Request.Context(), c.Param("id"))
	if asConflict(err) {
		h.renderCuisineDelete(c, http.StatusConflict)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/cuisines")
}

func (h *Handler) renderCuisineDelete(c *gin.Context, status int) {
	d, err := h.svc.Cuisines.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(status, "cuisine_delete.html", gin.H{
		"Title":       "Delete Cuisine",
		"Cuisine":     d.Cuisine,
		"Restaurants": d.Restaurants,
	})
}
