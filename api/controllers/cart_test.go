package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aromacraft/storefront-backend/api/middleware"
	cartsvc "github.com/aromacraft/storefront-backend/internal/cart"
	offerssvc "github.com/aromacraft/storefront-backend/internal/offers"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/types"
)

type stubCartService struct {
	items   []types.CartLine
	summary *types.PricingSummary

	addErr    error
	updateErr error

	addedInputs  []cartsvc.AddItemInput
	appliedCodes []string
	applyResult  *cartsvc.ApplyDiscountResult
	applyErr     error
	cleared      bool
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) error {
	s.addedInputs = append(s.addedInputs, input)
	return s.addErr
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID, name string, delta int) error {
	return s.updateErr
}

func (s *stubCartService) UpdateQuantityAt(ctx context.Context, sessionID string, index, delta int) error {
	return s.updateErr
}

func (s *stubCartService) RemoveLine(ctx context.Context, sessionID, name string) error {
	return nil
}

func (s *stubCartService) RemoveLineAt(ctx context.Context, sessionID string, index int) error {
	return nil
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) error {
	s.cleared = true
	return nil
}

func (s *stubCartService) ApplyDiscountCode(ctx context.Context, sessionID, code string) (*cartsvc.ApplyDiscountResult, error) {
	s.appliedCodes = append(s.appliedCodes, code)
	return s.applyResult, s.applyErr
}

func (s *stubCartService) Summary(ctx context.Context, sessionID string) (*types.PricingSummary, error) {
	return s.summary, nil
}

func (s *stubCartService) Items(ctx context.Context, sessionID string) ([]types.CartLine, error) {
	return s.items, nil
}

type stubOffersService struct {
	pending string
}

func (s stubOffersService) Offers(ctx context.Context) []offerssvc.Offer { return nil }

func (s stubOffersService) Deal(ctx context.Context) (*offerssvc.Remaining, error) {
	return nil, nil
}

func (s stubOffersService) Claim(ctx context.Context, sessionID, code string) (*offerssvc.Offer, error) {
	return nil, nil
}

func (s stubOffersService) PendingCode(ctx context.Context, sessionID string) (string, error) {
	return s.pending, nil
}

func sessionRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
}

func TestCartFetchReturnsItemsAndSummary(t *testing.T) {
	svc := &stubCartService{
		items: []types.CartLine{
			{Name: "Sunset Roast", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 2},
		},
		summary: &types.PricingSummary{
			Subtotal:  decimal.RequireFromString("39.98"),
			ItemCount: 2,
		},
	}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Name != "Sunset Roast" {
		t.Fatalf("unexpected items: %+v", envelope.Data.Items)
	}
	if envelope.Data.Summary.ItemCount != 2 {
		t.Fatalf("unexpected item count: %d", envelope.Data.Summary.ItemCount)
	}
}

func TestCartAddItemCreated(t *testing.T) {
	svc := &stubCartService{summary: &types.PricingSummary{}}
	handler := CartAddItem(svc, nil)

	body := `{"name":"Sunset Roast","price":"$19.99","quantity":2}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if len(svc.addedInputs) != 1 {
		t.Fatalf("expected one add call got %d", len(svc.addedInputs))
	}
	if svc.addedInputs[0].Price != "$19.99" || svc.addedInputs[0].Quantity != 2 {
		t.Fatalf("unexpected input: %+v", svc.addedInputs[0])
	}
}

func TestCartAddItemMissingNameRejected(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"price":"9.99"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateLineNotFound(t *testing.T) {
	svc := &stubCartService{updateErr: pkgerrors.New(pkgerrors.CodeNotFound, "no cart line named Missing")}

	router := chi.NewRouter()
	router.Patch("/api/v1/cart/items/{name}", CartUpdateLine(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, sessionRequest(http.MethodPatch, "/api/v1/cart/items/Missing", `{"delta":1}`))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartClearReturnsEmptyState(t *testing.T) {
	svc := &stubCartService{summary: &types.PricingSummary{}}
	handler := CartClear(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear to be forwarded to the service")
	}
}

func TestCartApplyDiscountRejectedCodeStillOK(t *testing.T) {
	svc := &stubCartService{
		summary:     &types.PricingSummary{},
		applyResult: &cartsvc.ApplyDiscountResult{Applied: false},
	}
	handler := CartApplyDiscount(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/discount", `{"code":"BOGUS"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data applyDiscountResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Applied {
		t.Fatal("expected applied false for unknown code")
	}
}

func TestCartPendingDiscountConsumesClaim(t *testing.T) {
	cartStub := &stubCartService{
		summary:     &types.PricingSummary{},
		applyResult: &cartsvc.ApplyDiscountResult{Applied: true, Description: "shipping waived"},
	}
	handler := CartPendingDiscount(cartStub, stubOffersService{pending: "FREESHIP"}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart/discount/pending", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(cartStub.appliedCodes) != 1 || cartStub.appliedCodes[0] != "FREESHIP" {
		t.Fatalf("expected pending code applied, got %v", cartStub.appliedCodes)
	}
}

func TestCartPendingDiscountEmpty(t *testing.T) {
	cartStub := &stubCartService{summary: &types.PricingSummary{}}
	handler := CartPendingDiscount(cartStub, stubOffersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart/discount/pending", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(cartStub.appliedCodes) != 0 {
		t.Fatalf("no code should be applied, got %v", cartStub.appliedCodes)
	}

	var envelope struct {
		Data pendingDiscountResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Applied || envelope.Data.Code != "" {
		t.Fatalf("expected empty pending response, got %+v", envelope.Data)
	}
}
