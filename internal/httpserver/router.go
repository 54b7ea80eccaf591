package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"jerseyshop/internal/auth"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/metrics"
	adminsvc "jerseyshop/internal/service/admin"
	cartsvc "jerseyshop/internal/service/cart"
	categorysvc "jerseyshop/internal/service/category"
	identitysvc "jerseyshop/internal/service/identity"
	jerseysvc "jerseyshop/internal/service/jersey"
	ordersvc "jerseyshop/internal/service/order"
	paymentsvc "jerseyshop/internal/service/payment"
)

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in categorysvc.CreateInput) (*domain.Category, error)
}

type jerseyService interface {
	List(ctx context.Context, f domain.JerseyFilter) (domain.Page[domain.Jersey], error)
	Get(ctx context.Context, id int64) (*domain.Jersey, error)
	Create(ctx context.Context, in jerseysvc.Input) (*domain.Jersey, error)
	Update(ctx context.Context, id int64, in jerseysvc.PatchInput) (*domain.Jersey, error)
	Delete(ctx context.Context, id int64) error
}

type identityService interface {
	authenticator
	Register(ctx context.Context, in identitysvc.RegisterInput) (*identitysvc.Session, bool, error)
	AdminLogin(ctx context.Context, email, password string) (*identitysvc.Session, error)
	GetUser(ctx context.Context, caller auth.Identity, id string) (*domain.User, error)
	Me(ctx context.Context, caller auth.Identity) (*domain.User, error)
}

type cartService interface {
	Get(ctx context.Context, userID string) (*domain.CartSummary, error)
	AddItem(ctx context.Context, userID string, in cartsvc.AddInput) (*domain.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID string, in cartsvc.UpdateInput) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type paymentService interface {
	Process(ctx context.Context, in paymentsvc.ProcessInput) (*paymentsvc.Result, error)
	Get(ctx context.Context, id string) (*domain.Payment, error)
}

type adminService interface {
	Dashboard(ctx context.Context) (*adminsvc.Dashboard, error)
	Orders(ctx context.Context, status string, page domain.PageRequest) (domain.Page[domain.Order], error)
	Payments(ctx context.Context, status string, page domain.PageRequest) (domain.Page[domain.Payment], error)
	Users(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error)
}

// Deps bundles the services the router dispatches to.
type Deps struct {
	CategorySvc categoryService
	JerseySvc   jerseyService
	IdentitySvc identityService
	CartSvc     cartService
	OrderSvc    orderService
	PaymentSvc  paymentService
	AdminSvc    adminService
}

func (d Deps) validate() error {
	switch {
	case d.CategorySvc == nil:
		return errors.New("category service required")
	case d.JerseySvc == nil:
		return errors.New("jersey service required")
	case d.IdentitySvc == nil:
		return errors.New("identity service required")
	case d.CartSvc == nil:
		return errors.New("cart service required")
	case d.OrderSvc == nil:
		return errors.New("order service required")
	case d.PaymentSvc == nil:
		return errors.New("payment service required")
	case d.AdminSvc == nil:
		return errors.New("admin service required")
	}
	return nil
}

// Options tune the router's cross-cutting middleware.
type Options struct {
	CORSOrigins []string
	// Metrics records request metrics when set.
	Metrics *metrics.HTTP
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

type handler struct {
	Deps
	logger *slog.Logger
}

// buildRouter wires routes for the API.
func buildRouter(logger *slog.Logger, db pinger, deps Deps, opts Options) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	useJSONFieldNames()

	router := gin.New()
	router.Use(requestID(), recovery(logger), requestLogger(logger), corsMiddleware(opts.CORSOrigins))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	h := &handler{Deps: deps, logger: logger}
	authn := authenticate(deps.IdentitySvc, logger)
	admin := requireAdmin(logger)

	api := router.Group("/api")
	api.GET("/categories", h.listCategories)
	api.GET("/categories/:id", h.getCategory)
	api.POST("/categories", authn, admin, h.createCategory)

	api.GET("/jerseys", h.listJerseys)
	api.GET("/jerseys/:id", h.getJersey)
	api.POST("/jerseys", authn, admin, h.createJersey)
	api.PATCH("/jerseys/:id", authn, admin, h.updateJersey)
	api.DELETE("/jerseys/:id", authn, admin, h.deleteJersey)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/admin/login", h.adminLogin)
	authGroup.GET("/me", authn, h.me)
	authGroup.GET("/users/:id", authn, h.getUser)

	cart := api.Group("/cart", authn)
	cart.GET("", h.getCart)
	cart.POST("/items", h.addCartItem)
	cart.PATCH("/items/:id", h.updateCartItem)
	cart.DELETE("/items/:id", h.removeCartItem)
	cart.DELETE("", h.clearCart)

	api.POST("/orders", h.createOrder)
	api.GET("/orders", authn, h.listMyOrders)
	api.GET("/orders/:id", h.getOrder)

	api.POST("/payments", h.processPayment)
	api.GET("/payments/:id", h.getPayment)

	adminGroup := api.Group("/admin", authn, admin)
	adminGroup.GET("/dashboard", h.dashboard)
	adminGroup.GET("/orders", h.adminOrders)
	adminGroup.GET("/payments", h.adminPayments)
	adminGroup.GET("/users", h.adminUsers)
	adminGroup.POST("/categories", h.createCategory)
	adminGroup.POST("/jerseys", h.createJersey)
	adminGroup.PATCH("/jerseys/:id", h.updateJersey)
	adminGroup.DELETE("/jerseys/:id", h.deleteJersey)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope{Success: false, Message: "Route not found"})
	})

	return router, nil
}
