package routes

import (
	"fmt"

	"halal-directory/handlers"
	"halal-directory/middleware"
	"halal-directory/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options wires the cross-cutting pieces of the router.
type Options struct {
	Logger      *zap.Logger
	Auth        *middleware.EditorAuth
	Metrics     *middleware.Metrics
	CORSOrigins []string
}

// NewRouter builds the engine with middleware, templates and every route.
func NewRouter(h *handlers.Handler, opts Options) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger), opts.Metrics.Middleware())
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	SetupRoutes(r, h, opts.Auth)
	return r, nil
}

// SetupRoutes registers the directory pages. Literal "/create" paths are
// registered before the ":id" paths of the same entity.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth *middleware.EditorAuth) {
	// ── Public pages ───────────────────────────────────────────────
	r.GET("/", h.Index)

	public := r.Group("")
	{
		public.GET("/restaurants", h.RestaurantList)
		public.GET("/locations", h.LocationList)
		public.GET("/cuisines", h.CuisineList)
		public.GET("/restaurantinstances", h.InstanceList)
	}

	// ── Editor sign-in ─────────────────────────────────────────────
	if auth.Enabled() {
		r.GET("/login", h.LoginForm)
		r.POST("/login", h.Login)
		r.POST("/logout", h.Logout)
	}

	// ── Write pages (editor only when sign-in is enabled) ──────────
	edit := r.Group("")
	edit.Use(auth.EditorRequired())

	// Restaurant
	edit.GET("/restaurant/create", h.RestaurantCreateForm)
	edit.POST("/restaurant/create", h.RestaurantCreate)
	edit.GET("/restaurant/:id/delete", h.RestaurantDeleteForm)
	edit.POST("/restaurant/:id/delete", h.RestaurantDelete)
	edit.GET("/restaurant/:id/update", h.RestaurantUpdateForm)
	edit.POST("/restaurant/:id/update", h.RestaurantUpdate)
	public.GET("/restaurant/:id", h.RestaurantDetail)

	// Location
	edit.GET("/location/create", h.LocationCreateForm)
	edit.POST("/location/create", h.LocationCreate)
	edit.GET("/location/:id/delete", h.LocationDeleteForm)
	edit.POST("/location/:id/delete", h.LocationDelete)
	edit.GET("/location/:id/update", h.LocationUpdateForm)
	edit.POST("/location/:id/update", h.LocationUpdate)
	public.GET("/location/:id", h.LocationDetail)

	// Cuisine
	edit.GET("/cuisine/create", h.CuisineCreateForm)
	edit.POST("/cuisine/create", h.CuisineCreate)
	edit.GET("/cuisine/:id/delete", h.CuisineDeleteForm)
	edit.POST("/cuisine/:id/delete", h.CuisineDelete)
	edit.GET("/cuisine/:id/update", h.CuisineUpdateForm)
	edit.POST("/cuisine/:id/update", h.CuisineUpdate)
	public.GET("/cuisine/:id", h.CuisineDetail)

	// RestaurantInstance
	edit.GET("/restaurantinstance/create", h.InstanceCreateForm)
	edit.POST("/restaurantinstance/create", h.InstanceCreate)
	edit.GET("/restaurantinstance/:id/delete", h.InstanceDeleteForm)
	edit.POST("/restaurantinstance/:id/delete", h.InstanceDelete)
	edit.GET("/restaurantinstance/:id/update", h.InstanceUpdateForm)
	edit.POST("/restaurantinstance/:id/update", h.InstanceUpdate)
	public.GET("/restaurantinstance/:id", h.InstanceDetail)
}
