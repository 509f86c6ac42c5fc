package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{
		"index.html", "error.html", "login.html",
		"cuisine_list.html", "cuisine_detail.html", "cuisine_form.html", "cuisine_delete.html",
		"location_list.html", "location_detail.html", "location_form.html", "location_delete.html",
		"restaurant_list.html", "restaurant_detail.html", "restaurant_form.html", "restaurant_delete.html",
		"restaurantinstance_list.html", "restaurantinstance_detail.html",
		"restaurantinstance_form.html", "restaurantinstance_delete.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestErrorPage(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error.html", map[string]any{
		"Title":   "Not found",
		"Message": "Cuisine not found",
		"Status":  404,
	}))
	assert.Contains(t, buf.String(), "Cuisine not found")
}
