package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/session"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	Sessions       *session.Loader
	DB             *gorm.DB
	// AuthRateLimit is requests per second per client IP on register and
	// login routes. Zero disables the limiter.
	AuthRateLimit float64
}

var getOrPost = []string{http.MethodGet, http.MethodPost}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Error("ready_check_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	// Every route resolves the session cookie first; extra middleware runs
	// after that.
	route := func(path string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
		chain := append([]echo.MiddlewareFunc{d.Sessions.Load}, mw...)
		e.Match(getOrPost, path, h, chain...)
	}

	var limited []echo.MiddlewareFunc
	if d.AuthRateLimit > 0 {
		limited = append(limited, authLimiter(d.AuthRateLimit))
	}
	route("/registerCustomer", d.AuthHandler.RegisterCustomer, limited...)
	route("/createAdmin", d.AuthHandler.CreateAdmin, limited...)
	route("/loginCustomer", d.AuthHandler.LoginCustomer, limited...)
	route("/loginAdmin", d.AuthHandler.LoginAdmin, limited...)
	route("/logout", d.AuthHandler.Logout)
	route("/showAllUsers", d.AuthHandler.ShowAllUsers)

	route("/categories", d.CatalogHandler.Categories)
	route("/getAllProducts", d.CatalogHandler.GetAllProducts)
	route("/getProductsByCategory", d.CatalogHandler.GetProductsByCategory)
	route("/getSpecificProduct", d.CatalogHandler.GetSpecificProduct)
	route("/searchProducts", d.CatalogHandler.SearchProducts)

	route("/addProduct", d.CatalogHandler.AddProduct, d.Sessions.RequireLogin)
	route("/deleteProduct", d.CatalogHandler.DeleteProduct, d.Sessions.RequireLogin)
	route("/updateProduct", d.CatalogHandler.UpdateProduct, d.Sessions.RequireLogin)
}

func authLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"success": false, "message": "Too many requests"})
		},
	})
}
