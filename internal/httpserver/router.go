package httpserver

import (
	"context"
	"errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luzeouro/internal/db"
	"luzeouro/internal/domain"
	cartsvc "luzeouro/internal/service/cart"
	productsvc "luzeouro/internal/service/product"
	profilesvc "luzeouro/internal/service/profile"
	"luzeouro/internal/service/session"
	"luzeouro/internal/theme"
)

type SessionService interface {
	SignUp(ctx context.Context, in session.SignUpInput) (*domain.User, *domain.UserProfile, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, session.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (session.Tokens, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Filters(ctx context.Context) (productsvc.Facets, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, userID string, in profilesvc.UpdateInput) (*domain.UserProfile, error)
	Theme(ctx context.Context, userID string) (theme.Theme, error)
	ToggleTheme(ctx context.Context, userID string) (theme.Theme, error)
}

type CartService interface {
	LoadCart(ctx context.Context, userID string) []domain.CartLineView
	View(ctx context.Context, userID string) (domain.CartView, error)
	AddProduct(ctx context.Context, userID, productID string) (domain.CartView, error)
	SetQuantity(ctx context.Context, userID, lineID string, quantity int) (domain.CartView, error)
	RemoveLine(ctx context.Context, userID, lineID string) (domain.CartView, error)
	ResolveShipping(ctx context.Context, userID, postalCode string) (domain.CartView, error)
	SubmitOrder(ctx context.Context, userID string, form cartsvc.CheckoutForm) (*domain.Order, error)
}

type OrderService interface {
	History(ctx context.Context, userID string) ([]domain.Order, error)
}

type FavoriteService interface {
	Toggle(ctx context.Context, userID, productID string) (bool, error)
	List(ctx context.Context, userID string) ([]domain.Product, error)
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// Deps holds the services the router dispatches to.
type Deps struct {
	Session    SessionService
	Categories CategoryService
	Products   ProductService
	Profiles   ProfileService
	Carts      CartService
	Orders     OrderService
	Favorites  FavoriteService
}

func (d Deps) validate() error {
	switch {
	case d.Session == nil:
		return errors.New("session service required")
	case d.Categories == nil:
		return errors.New("category service required")
	case d.Products == nil:
		return errors.New("product service required")
	case d.Profiles == nil:
		return errors.New("profile service required")
	case d.Carts == nil:
		return errors.New("cart service required")
	case d.Orders == nil:
		return errors.New("order service required")
	case d.Favorites == nil:
		return errors.New("favorite service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, pinger db.Pinger, deps Deps, opts Options) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}

	h := &handlers{deps: deps, logger: logger.Named("http"), photos: photoResolver(opts.PhotoBaseURL)}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(pinger))

	auth := router.Group("/auth")
	auth.POST("/signup", h.signUp)
	auth.POST("/token", h.token)
	auth.POST("/logout", h.logout)

	router.GET("/categories", h.listCategories)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/catalog/filters", h.catalogFilters)

	me := router.Group("/me", authMiddleware(deps.Session))
	me.GET("", h.me)
	me.GET("/profile", h.getProfile)
	me.PUT("/profile", h.updateProfile)
	me.PUT("/password", h.changePassword)
	me.GET("/theme", h.getTheme)
	me.POST("/theme/toggle", h.toggleTheme)

	me.GET("/cart", h.viewCart)
	me.GET("/cart/count", h.cartCount)
	me.POST("/cart/items", h.addCartItem)
	me.PATCH("/cart/items/:lineId", h.setCartQuantity)
	me.DELETE("/cart/items/:lineId", h.removeCartItem)
	me.POST("/cart/shipping", h.resolveShipping)
	me.POST("/checkout", h.checkout)
	me.GET("/orders", h.orderHistory)

	me.GET("/favorites", h.listFavorites)
	me.POST("/favorites/:productId/toggle", h.toggleFavorite)
	me.DELETE("/favorites/:productId", h.removeFavorite)
	me.DELETE("/favorites", h.clearFavorites)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
	photos func(string) string
}
