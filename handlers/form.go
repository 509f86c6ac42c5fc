package handlers

import (
	"github.com/gin-gonic/gin"
)

// formValues reads a multi-valued form field. Browsers send it as repeated
// "name" keys or as "name[]"; a single value becomes a one-element slice and
// a missing field an empty slice, never nil.
func formValues(c *gin.Context, name string) []string {
	values := []string{}
	if v, ok := c.GetPostFormArray(name); ok {
		values = append(values, v...)
	}
	if v, ok := c.GetPostFormArray(name + "[]"); ok {
		values = append(values, v...)
	}
	return values
}
