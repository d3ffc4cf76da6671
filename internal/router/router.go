// Package router sets up all HTTP routes and middleware chains for the
// vendora API. It organizes routes into public, authenticated, seller and
// admin groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"vendora/internal/auth"
	"vendora/internal/cache"
	"vendora/internal/handlers"
	"vendora/internal/middleware"
	"vendora/internal/models"
)

// Deps carries the handler groups and shared services the router wires up.
type Deps struct {
	Tokens     *auth.Tokens
	Cache      *cache.Cache
	Auth       *handlers.Auth
	Categories *handlers.Categories
	Products   *handlers.Products
	Shops      *handlers.Shops
	Seller     *handlers.Seller
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	authenticated := middleware.Authenticate(d.Tokens, d.Cache)

	r.Route("/api", func(r chi.Router) {
		// Auth — rate limited against credential stuffing.
		r.Route("/auth", func(r chi.Router) {
			limiter := middleware.NewRateLimiter(20, time.Minute)
			r.Use(limiter.Middleware)

			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/logout", d.Auth.Logout)
				r.Get("/me", d.Auth.Me)
				r.Put("/me", d.Auth.UpdateProfile)
			})
		})

		// Public catalog reads.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/tree", d.Categories.Tree)
			r.Get("/{id}", d.Categories.Get)
			r.Get("/{id}/children", d.Categories.Children)
			r.Get("/slug/{slug}", d.Categories.GetBySlug)
			r.Get("/{id}/products", d.Products.ByCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", d.Products.Search)
			r.Get("/best-sellers", d.Products.BestSellers)
			r.Get("/new-arrivals", d.Products.NewArrivals)
			r.Get("/top-rated", d.Products.TopRated)
			r.Get("/slug/{slug}", d.Products.GetBySlug)
			r.Get("/{id}", d.Products.Get)
			r.Get("/{id}/reviews", d.Products.Reviews)
		})

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", d.Shops.List)
			r.Get("/slug/{slug}", d.Shops.GetBySlug)
			r.Get("/{id}", d.Shops.Get)
			r.Get("/{id}/products", d.Products.ByShop)
		})

		// Seller area.
		r.Route("/seller", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.RequireRole(models.RoleSeller))

			r.Get("/shop", d.Shops.Mine)
			r.Post("/shop", d.Shops.Create)
			r.Put("/shop", d.Shops.Update)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", d.Seller.ListProducts)
				r.Post("/", d.Seller.CreateProduct)
				r.Put("/{id}", d.Seller.UpdateProduct)
				r.Delete("/{id}", d.Seller.DeleteProduct)

				r.Get("/{id}/variants", d.Seller.ListVariants)
				r.Post("/{id}/variants", d.Seller.CreateVariant)
				r.Post("/{id}/images", d.Seller.UploadImage)
			})

			r.Route("/variants", func(r chi.Router) {
				r.Put("/{variantID}", d.Seller.UpdateVariant)
				r.Put("/{variantID}/stock", d.Seller.UpdateStock)
				r.Delete("/{variantID}", d.Seller.DeleteVariant)
			})

			r.Delete("/images/{imageID}", d.Seller.DeleteImage)
		})

		// Admin area.
		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", d.Categories.List)
				r.Get("/tree", d.Categories.AdminTree)
				r.Post("/", d.Categories.Create)
				r.Put("/{id}", d.Categories.Update)
				r.Post("/{id}/toggle", d.Categories.ToggleActive)
				r.Delete("/{id}", d.Categories.Delete)
			})
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
