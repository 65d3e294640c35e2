package router

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	couponHandler *handler.CouponHandler,
	productHandler *handler.ProductHandler,
	addressHandler *handler.AddressHandler,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	bearer := middleware.BearerAuth(tokens, logger)
	admin := middleware.AdminOnly(logger)

	// protected wraps a handler func with bearer token authentication.
	protected := func(h http.HandlerFunc) http.Handler {
		return bearer(h)
	}
	// adminOnly additionally requires the admin role.
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return bearer(admin(h))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/auth/register", methodHandler(http.MethodPost, authHandler.Register))
	mux.HandleFunc("/api/auth/login", methodHandler(http.MethodPost, authHandler.Login))
	mux.HandleFunc("/api/auth/refresh", methodHandler(http.MethodPost, authHandler.Refresh))
	mux.HandleFunc("/api/auth/logout", methodHandler(http.MethodPost, authHandler.Logout))

	mux.Handle("/api/users/profile", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authHandler.GetProfile(w, r)
		case http.MethodPut:
			authHandler.UpdateProfile(w, r)
		default:
			methodNotAllowed(w)
		}
	}))

	cartRoute := protected(func(w http.ResponseWriter, r *http.Request) {
		if isCollection(r.URL.Path, "/api/cart") {
			switch r.Method {
			case http.MethodGet:
				cartHandler.GetItems(w, r)
			case http.MethodPost:
				cartHandler.AddItem(w, r)
			default:
				methodNotAllowed(w)
			}
			return
		}
		switch r.Method {
		case http.MethodPut:
			cartHandler.UpdateItem(w, r)
		case http.MethodDelete:
			cartHandler.RemoveItem(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.Handle("/api/cart", cartRoute)
	mux.Handle("/api/cart/", cartRoute)

	mux.Handle("/api/checkout", protected(methodHandler(http.MethodPost, orderHandler.Checkout)))

	orderRoute := protected(func(w http.ResponseWriter, r *http.Request) {
		if isCollection(r.URL.Path, "/api/orders") {
			switch r.Method {
			case http.MethodGet:
				orderHandler.GetAll(w, r)
			case http.MethodPost:
				orderHandler.Create(w, r)
			default:
				methodNotAllowed(w)
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			orderHandler.GetByID(w, r)
		case http.MethodDelete:
			orderHandler.Cancel(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.Handle("/api/orders", orderRoute)
	mux.Handle("/api/orders/", orderRoute)

	mux.Handle("/api/coupons/validate", protected(methodHandler(http.MethodPost, couponHandler.Validate)))
	mux.Handle("/api/coupons", adminOnly(methodHandler(http.MethodPost, couponHandler.Create)))
	mux.Handle("/api/coupons/", adminOnly(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			couponHandler.Update(w, r)
		case http.MethodDelete:
			couponHandler.Delete(w, r)
		default:
			methodNotAllowed(w)
		}
	}))

	productRoute := func(w http.ResponseWriter, r *http.Request) {
		if isCollection(r.URL.Path, "/api/products") {
			switch r.Method {
			case http.MethodGet:
				productHandler.GetAll(w, r)
			case http.MethodPost:
				adminOnly(productHandler.Create).ServeHTTP(w, r)
			default:
				methodNotAllowed(w)
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r)
		case http.MethodPut:
			adminOnly(productHandler.Update).ServeHTTP(w, r)
		case http.MethodDelete:
			adminOnly(productHandler.Delete).ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	}
	mux.HandleFunc("/api/products", productRoute)
	mux.HandleFunc("/api/products/", productRoute)

	categoryRoute := func(w http.ResponseWriter, r *http.Request) {
		if isCollection(r.URL.Path, "/api/categories") {
			switch r.Method {
			case http.MethodGet:
				productHandler.GetAllCategories(w, r)
			case http.MethodPost:
				adminOnly(productHandler.CreateCategory).ServeHTTP(w, r)
			default:
				methodNotAllowed(w)
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			productHandler.GetCategoryByID(w, r)
		case http.MethodPut:
			adminOnly(productHandler.UpdateCategory).ServeHTTP(w, r)
		case http.MethodDelete:
			adminOnly(productHandler.DeleteCategory).ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	}
	mux.HandleFunc("/api/categories", categoryRoute)
	mux.HandleFunc("/api/categories/", categoryRoute)

	addressRoute := protected(func(w http.ResponseWriter, r *http.Request) {
		if isCollection(r.URL.Path, "/api/addresses") {
			switch r.Method {
			case http.MethodGet:
				addressHandler.GetAll(w, r)
			case http.MethodPost:
				addressHandler.Create(w, r)
			default:
				methodNotAllowed(w)
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			addressHandler.GetByID(w, r)
		case http.MethodPut:
			addressHandler.Update(w, r)
		case http.MethodDelete:
			addressHandler.Delete(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.Handle("/api/addresses", addressRoute)
	mux.Handle("/api/addresses/", addressRoute)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// isCollection reports whether the path addresses the collection itself
// rather than an item under it.
func isCollection(path, prefix string) bool {
	return path == prefix || path == prefix+"/"
}

// methodHandler restricts a route to a single HTTP method.
func methodHandler(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w)
			return
		}
		h(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error": "VALIDATION_ERROR", "message": "Method not allowed"}`))
}
