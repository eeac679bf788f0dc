package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartsvc "github.com/aromacraft/storefront-backend/internal/cart"
	catalogsvc "github.com/aromacraft/storefront-backend/internal/catalog"
	checkoutsvc "github.com/aromacraft/storefront-backend/internal/checkout"
	eventssvc "github.com/aromacraft/storefront-backend/internal/events"
	newslettersvc "github.com/aromacraft/storefront-backend/internal/newsletter"
	offerssvc "github.com/aromacraft/storefront-backend/internal/offers"
	"github.com/aromacraft/storefront-backend/pkg/config"
	"github.com/aromacraft/storefront-backend/pkg/db/models"
	"github.com/aromacraft/storefront-backend/pkg/enums"
	"github.com/aromacraft/storefront-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCart struct{}

func (stubCart) AddItem(context.Context, string, cartsvc.AddItemInput) error       { return nil }
func (stubCart) UpdateQuantity(context.Context, string, string, int) error         { return nil }
func (stubCart) UpdateQuantityAt(context.Context, string, int, int) error          { return nil }
func (stubCart) RemoveLine(context.Context, string, string) error                  { return nil }
func (stubCart) RemoveLineAt(context.Context, string, int) error                   { return nil }
func (stubCart) Clear(context.Context, string) error                               { return nil }
func (stubCart) Items(context.Context, string) ([]types.CartLine, error)           { return nil, nil }
func (stubCart) Summary(context.Context, string) (*types.PricingSummary, error) {
	return &types.PricingSummary{}, nil
}
func (stubCart) ApplyDiscountCode(context.Context, string, string) (*cartsvc.ApplyDiscountResult, error) {
	return &cartsvc.ApplyDiscountResult{}, nil
}

type stubCheckout struct{}

func (stubCheckout) State(context.Context, string) (enums.CheckoutState, error) {
	return enums.CheckoutStateIdle, nil
}
func (stubCheckout) Begin(context.Context, string) error           { return nil }
func (stubCheckout) Verify(context.Context, string, string) error { return nil }
func (stubCheckout) Submit(context.Context, string, checkoutsvc.OrderForm) (*checkoutsvc.Confirmation, error) {
	return &checkoutsvc.Confirmation{}, nil
}
func (stubCheckout) Abandon(context.Context, string) error { return nil }

type stubCatalog struct{}

func (stubCatalog) List(context.Context, catalogsvc.ListInput) (*catalogsvc.ListResult, error) {
	return &catalogsvc.ListResult{}, nil
}
func (stubCatalog) Recommended(context.Context) ([]models.Product, error) { return nil, nil }
func (stubCatalog) SaveSearchIntent(context.Context, string, string) error {
	return nil
}
func (stubCatalog) ConsumeSearchIntent(context.Context, string) (string, error) { return "", nil }

type stubOffers struct{}

func (stubOffers) Offers(context.Context) []offerssvc.Offer { return nil }
func (stubOffers) Deal(context.Context) (*offerssvc.Remaining, error) {
	return &offerssvc.Remaining{}, nil
}
func (stubOffers) Claim(context.Context, string, string) (*offerssvc.Offer, error) {
	return &offerssvc.Offer{}, nil
}
func (stubOffers) PendingCode(context.Context, string) (string, error) { return "", nil }

type stubEvents struct{}

func (stubEvents) Register(context.Context, eventssvc.RegistrationInput) (*models.EventRegistration, error) {
	return &models.EventRegistration{}, nil
}
func (stubEvents) List(context.Context, string) ([]models.EventRegistration, error) {
	return nil, nil
}

type stubNewsletter struct{}

func (stubNewsletter) Subscribe(context.Context, newslettersvc.SubscribeInput) (*newslettersvc.SubscribeResult, error) {
	return &newslettersvc.SubscribeResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		Session: config.SessionConfig{
			CookieName: "ac_session",
			TTL:        168 * time.Hour,
		},
	}
}

func newTestRouter() http.Handler {
	return NewRouter(
		testConfig(),
		nil,
		stubPinger{},
		nil,
		nil,
		stubCart{},
		stubCheckout{},
		stubCatalog{},
		stubOffers{},
		stubEvents{},
		stubNewsletter{},
	)
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-AromaCraft-Env") != "dev" {
		t.Fatalf("missing env header, got %v", resp.Header())
	}
}

func TestRouterSessionMintedOnCartFetch(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected session header on storefront routes")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestRouterCheckoutStateRoute(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/checkout/state", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
