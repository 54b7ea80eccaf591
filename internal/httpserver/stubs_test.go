package httpserver

import (
	"context"
	"log/slog"

	"jerseyshop/internal/auth"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	adminsvc "jerseyshop/internal/service/admin"
	cartsvc "jerseyshop/internal/service/cart"
	categorysvc "jerseyshop/internal/service/category"
	identitysvc "jerseyshop/internal/service/identity"
	jerseysvc "jerseyshop/internal/service/jersey"
	ordersvc "jerseyshop/internal/service/order"
	paymentsvc "jerseyshop/internal/service/payment"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
	userID     = "0b7a4c1e-3c55-4d3e-9a77-4a54d1f0c001"
	adminID    = "0b7a4c1e-3c55-4d3e-9a77-4a54d1f0c002"
)

func logDiscard() *slog.Logger {
	return logging.Discard()
}

type stubCategoryService struct {
	cats      []domain.Category
	created   *categorysvc.CreateInput
	createErr error
}

func (s *stubCategoryService) List(context.Context) ([]domain.Category, error) {
	return s.cats, nil
}

func (s *stubCategoryService) Get(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range s.cats {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.NotFound("category.get", "Category not found")
}

func (s *stubCategoryService) Create(_ context.Context, in categorysvc.CreateInput) (*domain.Category, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Category{ID: in.ID, Name: in.Name}, nil
}

type stubJerseyService struct {
	filter  domain.JerseyFilter
	page    domain.Page[domain.Jersey]
	listErr error
	created *jerseysvc.Input
	patched *jerseysvc.PatchInput
	deleted int64
}

func (s *stubJerseyService) List(_ context.Context, f domain.JerseyFilter) (domain.Page[domain.Jersey], error) {
	s.filter = f
	return s.page, s.listErr
}

func (s *stubJerseyService) Get(_ context.Context, id int64) (*domain.Jersey, error) {
	for _, j := range s.page.Items {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, domain.NotFound("jersey.get", "Jersey not found")
}

func (s *stubJerseyService) Create(_ context.Context, in jerseysvc.Input) (*domain.Jersey, error) {
	s.created = &in
	return &domain.Jersey{ID: 7, Name: in.Name, Price: in.Price}, nil
}

func (s *stubJerseyService) Update(_ context.Context, id int64, in jerseysvc.PatchInput) (*domain.Jersey, error) {
	s.patched = &in
	return &domain.Jersey{ID: id}, nil
}

func (s *stubJerseyService) Delete(_ context.Context, id int64) error {
	s.deleted = id
	return nil
}

type stubIdentityService struct {
	registered bool
	loginErr   error
}

func (s *stubIdentityService) Authenticate(_ context.Context, token string) (auth.Identity, error) {
	switch token {
	case userToken:
		return auth.Identity{UserID: userID, Email: "buyer@example.com", Role: domain.RoleUser}, nil
	case adminToken:
		return auth.Identity{UserID: adminID, Email: "admin@example.com", Role: domain.RoleAdmin}, nil
	}
	return auth.Identity{}, domain.Unauthorized("identity.authenticate", "Invalid or expired token")
}

func (s *stubIdentityService) Register(_ context.Context, in identitysvc.RegisterInput) (*identitysvc.Session, bool, error) {
	u := &domain.User{ID: userID, Email: in.Email, CompanyName: in.CompanyName, Phone: in.Phone, Role: domain.RoleUser}
	return &identitysvc.Session{User: u, Token: userToken}, !s.registered, nil
}

func (s *stubIdentityService) AdminLogin(_ context.Context, email, _ string) (*identitysvc.Session, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &identitysvc.Session{User: &domain.User{ID: adminID, Email: email, Role: domain.RoleAdmin}, Token: adminToken}, nil
}

func (s *stubIdentityService) GetUser(_ context.Context, caller auth.Identity, id string) (*domain.User, error) {
	if caller.UserID != id && !caller.IsAdmin() {
		return nil, domain.Forbidden("identity.get_user", "Access denied")
	}
	return &domain.User{ID: id}, nil
}

func (s *stubIdentityService) Me(_ context.Context, caller auth.Identity) (*domain.User, error) {
	return &domain.User{ID: caller.UserID, Email: caller.Email, Role: caller.Role}, nil
}

type stubCartService struct {
	userID  string
	added   *cartsvc.AddInput
	updated *cartsvc.UpdateInput
	cleared bool
}

func (s *stubCartService) Get(_ context.Context, userID string) (*domain.CartSummary, error) {
	s.userID = userID
	return &domain.CartSummary{Cart: domain.Cart{ID: "cart-1", UserID: userID, Items: []domain.CartItem{}}}, nil
}

func (s *stubCartService) AddItem(_ context.Context, userID string, in cartsvc.AddInput) (*domain.CartItem, error) {
	s.userID, s.added = userID, &in
	if in.JerseyID == 0 {
		return nil, domain.Invalid("cart.add_item", "Jersey ID is required")
	}
	return &domain.CartItem{ID: "item-1", JerseyID: in.JerseyID, Quantity: 1}, nil
}

func (s *stubCartService) UpdateItem(_ context.Context, userID, itemID string, in cartsvc.UpdateInput) (*domain.CartItem, error) {
	s.userID, s.updated = userID, &in
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, nil
	}
	return &domain.CartItem{ID: itemID, Quantity: *in.Quantity}, nil
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, itemID string) error {
	s.userID = userID
	if itemID != "item-1" {
		return domain.NotFound("cart.remove_item", "Cart item not found")
	}
	return nil
}

func (s *stubCartService) Clear(_ context.Context, userID string) error {
	s.userID, s.cleared = userID, true
	return nil
}

type stubOrderService struct {
	input     *ordersvc.CreateInput
	createErr error
	listedFor string
}

func (s *stubOrderService) Create(_ context.Context, in ordersvc.CreateInput) (*domain.Order, error) {
	s.input = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Order{ID: "order-1", Status: domain.OrderPending, Subtotal: 25000, Tax: 4500, Total: 29500}, nil
}

func (s *stubOrderService) Get(_ context.Context, id string) (*domain.Order, error) {
	if id != "order-1" {
		return nil, domain.NotFound("order.get", "Order not found")
	}
	return &domain.Order{ID: id, Status: domain.OrderPending}, nil
}

func (s *stubOrderService) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.listedFor = userID
	return []domain.Order{{ID: "order-1", UserID: userID}}, nil
}

type stubPaymentService struct {
	processErr error
	panicOn    bool
}

func (s *stubPaymentService) Process(_ context.Context, in paymentsvc.ProcessInput) (*paymentsvc.Result, error) {
	if s.panicOn {
		panic("boom")
	}
	if s.processErr != nil {
		return nil, s.processErr
	}
	return &paymentsvc.Result{
		Payment: &domain.Payment{ID: "pay-1", OrderID: in.OrderID, Method: in.Method, Amount: 29500, Status: domain.PaymentCompleted},
		Order:   &domain.Order{ID: in.OrderID, Status: domain.OrderPaid},
		DownloadLinks: []domain.DownloadLink{
			{JerseyID: 3, Name: "Home Kit", DownloadURL: "https://cdn.example.com/home.zip"},
		},
	}, nil
}

func (s *stubPaymentService) Get(_ context.Context, id string) (*domain.Payment, error) {
	return nil, domain.NotFound("payment.get", "Payment not found")
}

type stubAdminService struct {
	status string
	page   domain.PageRequest
}

func (s *stubAdminService) Dashboard(context.Context) (*adminsvc.Dashboard, error) {
	return &adminsvc.Dashboard{RecentOrders: []domain.Order{}, RecentPayments: []domain.Payment{}}, nil
}

func (s *stubAdminService) Orders(_ context.Context, status string, page domain.PageRequest) (domain.Page[domain.Order], error) {
	s.status, s.page = status, page
	if status == "BOGUS" {
		return domain.Page[domain.Order]{}, domain.Invalid("admin.orders", "Unknown order status")
	}
	return domain.Page[domain.Order]{
		Items:      []domain.Order{{ID: "order-1"}},
		Pagination: domain.NewPagination(page, 41),
	}, nil
}

func (s *stubAdminService) Payments(_ context.Context, status string, page domain.PageRequest) (domain.Page[domain.Payment], error) {
	s.status, s.page = status, page
	return domain.Page[domain.Payment]{Pagination: domain.NewPagination(page, 0)}, nil
}

func (s *stubAdminService) Users(_ context.Context, page domain.PageRequest) (domain.Page[domain.User], error) {
	s.page = page
	return domain.Page[domain.User]{Pagination: domain.NewPagination(page, 0)}, nil
}

type stubs struct {
	categories *stubCategoryService
	jerseys    *stubJerseyService
	identity   *stubIdentityService
	cart       *stubCartService
	orders     *stubOrderService
	payments   *stubPaymentService
	admin      *stubAdminService
}

func newStubs() *stubs {
	return &stubs{
		categories: &stubCategoryService{},
		jerseys:    &stubJerseyService{},
		identity:   &stubIdentityService{},
		cart:       &stubCartService{},
		orders:     &stubOrderService{},
		payments:   &stubPaymentService{},
		admin:      &stubAdminService{},
	}
}

func (s *stubs) deps() Deps {
	return Deps{
		CategorySvc: s.categories,
		JerseySvc:   s.jerseys,
		IdentitySvc: s.identity,
		CartSvc:     s.cart,
		OrderSvc:    s.orders,
		PaymentSvc:  s.payments,
		AdminSvc:    s.admin,
	}
}
