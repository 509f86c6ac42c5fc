package handlers

import (
	"net/http"

	"halal-directory/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) InstanceList(c *gin.Context) {
	instances, err := h.svc.Instances.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "restaurantinstance_list.html", gin.H{
		"Title":     "Restaurant Instance List",
		"Instances": instances,
	})
}

func (h *Handler) InstanceDetail(c *gin.Context) {
	instance, err := h.svc.Instances.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "restaurantinstance_detail.html", gin.H{
		"Title":    "Restaurant Instance",
		"Instance": instance,
	})
}

func (h *Handler) renderInstanceForm(c *gin.Context, status int, title string, in services.InstanceInput, verr *services.ValidationError) {
	options, err := h.svc.Instances.FormOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	data := gin.H{
		"Title":       title,
		"Instance":    in,
		"Restaurants": options.Restaurants,
		"Locations":   options.Locations,
		"Prices":      options.Prices,
	}
	if verr != nil {
		data["Errors"] = verr.Errors
	}
	c.HTML(status, "restaurantinstance_form.html", data)
}

func (h *Handler) InstanceCreateForm(c *gin.Context) {
	h.renderInstanceForm(c, http.StatusOK, "Create Restaurant Instance", services.InstanceInput{}, nil)
}

func (h *Handler) InstanceCreate(c *gin.Context) {
	var in services.InstanceInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	instance, err := h.svc.Instances.Create(c.Request.Context(), in)
	if verr, ok := asValidation(err); ok {
		h.renderInstanceForm(c, http.StatusUnprocessableEntity, "Create Restaurant Instance", in, verr)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, instance.URL())
}

func (h *Handler) InstanceUpdateForm(c *gin.Context) {
	instance, err := h.svc.Instances.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderInstanceForm(c, http.StatusOK, "Update Restaurant Instance", services.NewInstanceInput(instance), nil)
}

func (h *Handler) InstanceUpdate(c *gin.Context) {
	var in services.InstanceInput
	if err := c.ShouldBind(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	instance, err := h.svc.Instances.Update(c.Request.Context(), c.Param("id"), in)
	if verr, ok := asValidation(err); ok {
		h.renderInstanceForm(c, http.StatusUnprocessableEntity, "Update Restaurant Instance", in, verr)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, instance.URL())
}

func (h *Handler) InstanceDeleteForm(c *gin.Context) {
	instance, err := h.svc.Instances.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "restaurantinstance_delete.html", gin.H{
		"Title":    "Delete Restaurant Instance",
		"Instance": instance,
	})
}

// InstanceDelete always succeeds for an existing instance.
func (h *Handler) InstanceDelete(c *gin.Context) {
	if err := h.svc.Instances.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, "/restaurantinstances")
}
