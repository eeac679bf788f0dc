package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aromacraft/storefront-backend/internal/discounts"
	"github.com/aromacraft/storefront-backend/pkg/config"
	"github.com/aromacraft/storefront-backend/pkg/enums"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/metrics"
	"github.com/aromacraft/storefront-backend/pkg/types"
)

// Notifier receives best-effort cart notifications. Implementations must
// never block the mutation that triggered them; failures are theirs to log.
type Notifier interface {
	CartCountUpdated(ctx context.Context, sessionID string, count int)
	ItemAdded(ctx context.Context, sessionID, name string)
}

// Pricing holds the parsed money rules applied by Summary.
type Pricing struct {
	ShippingFee      decimal.Decimal
	FreeShippingOver decimal.Decimal
	TaxRate          decimal.Decimal
}

// PricingFromConfig parses the configured pricing strings into decimals.
func PricingFromConfig(cfg config.PricingConfig) (Pricing, error) {
	fee, err := decimal.NewFromString(cfg.ShippingFee)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse shipping fee: %w", err)
	}
	threshold, err := decimal.NewFromString(cfg.FreeShippingOver)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse free shipping threshold: %w", err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse tax rate: %w", err)
	}
	return Pricing{ShippingFee: fee, FreeShippingOver: threshold, TaxRate: rate}, nil
}

// Service exposes the session cart operations.
type Service interface {
	AddItem(ctx context.Context, sessionID string, input AddItemInput) error
	UpdateQuantity(ctx context.Context, sessionID, name string, delta int) error
	UpdateQuantityAt(ctx context.Context, sessionID string, index, delta int) error
	RemoveLine(ctx context.Context, sessionID, name string) error
	RemoveLineAt(ctx context.Context, sessionID string, index int) error
	Clear(ctx context.Context, sessionID string) error
	ApplyDiscountCode(ctx context.Context, sessionID, code string) (*ApplyDiscountResult, error)
	Summary(ctx context.Context, sessionID string) (*types.PricingSummary, error)
	Items(ctx context.Context, sessionID string) ([]types.CartLine, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	pricing  Pricing
	metrics  *metrics.StorefrontMetrics
}

// NewService builds a cart service backed by the provided stack. The
// notifier and metrics may be nil.
func NewService(repo Repository, notifier Notifier, pricing Pricing, m *metrics.StorefrontMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		pricing:  pricing,
		metrics:  m,
	}, nil
}

// AddItemInput captures the payload for a new or merged cart line. Price
// arrives display-formatted; normalization happens here, not in callers.
type AddItemInput struct {
	Name        string
	Price       string
	Quantity    int
	Image       string
	Description string
	Roast       string
	Origin      string
}

// ApplyDiscountResult reports the outcome of a discount code attempt. A
// miss is a result, not an error; only a blank code is rejected outright.
type ApplyDiscountResult struct {
	Applied     bool
	Description string
}

// AddItem normalizes the price, merges by exact name, and persists the
// whole cart. Malformed prices degrade to zero rather than failing.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.repo.LoadCart(ctx, sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}
	price := types.ParsePrice(input.Price)

	merged := false
	for i := range lines {
		if lines[i].Name == input.Name {
			lines[i].Quantity += qty
			// Older sessions may carry a price written before normalization;
			// re-parse the stored value on merge the same way new ones are.
			lines[i].UnitPrice = types.ParsePrice(lines[i].UnitPrice.String())
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, types.CartLine{
			Name:        input.Name,
			UnitPrice:   price,
			Quantity:    qty,
			Image:       input.Image,
			Description: input.Description,
			Roast:       input.Roast,
			Origin:      input.Origin,
		})
	}

	if err := s.repo.SaveCart(ctx, sessionID, lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}

	s.metrics.IncCartOp("add_item")
	if s.notifier != nil {
		s.notifier.CartCountUpdated(ctx, sessionID, countItems(lines))
		s.notifier.ItemAdded(ctx, sessionID, input.Name)
	}
	return nil
}

// UpdateQuantity shifts the named line's quantity by delta. A resulting
// quantity at or below zero removes the line.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, name string, delta int) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.repo.LoadCart(ctx, sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	found := -1
	for i := range lines {
		if lines[i].Name == name {
			found = i
			break
		}
	}
	if found < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	lines[found].Quantity += delta
	if lines[found].Quantity <= 0 {
		lines = append(lines[:found], lines[found+1:]...)
	}

	if err := s.repo.SaveCart(ctx, sessionID, lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}

	s.metrics.IncCartOp("update_quantity")
	if s.notifier != nil {
		s.notifier.CartCountUpdated(ctx, sessionID, countItems(lines))
	}
	return nil
}

// UpdateQuantityAt is the index-addressed wrapper for rendered line lists.
func (s *service) UpdateQuantityAt(ctx context.Context, sessionID string, index, delta int) error {
	name, err := s.nameAt(ctx, sessionID, index)
	if err != nil {
		return err
	}
	return s.UpdateQuantity(ctx, sessionID, name, delta)
}

// RemoveLine drops the named line unconditionally. Removing a name that is
// not present is a no-op, not an error.
func (s *service) RemoveLine(ctx context.Context, sessionID, name string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.repo.LoadCart(ctx, sessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.Name != name {
			kept = append(kept, line)
		}
	}

	if err := s.repo.SaveCart(ctx, sessionID, kept); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}

	s.metrics.IncCartOp("remove_line")
	if s.notifier != nil {
		s.notifier.CartCountUpdated(ctx, sessionID, countItems(kept))
	}
	return nil
}

// RemoveLineAt is the index-addressed wrapper for rendered line lists.
func (s *service) RemoveLineAt(ctx context.Context, sessionID string, index int) error {
	name, err := s.nameAt(ctx, sessionID, index)
	if err != nil {
		return err
	}
	return s.RemoveLine(ctx, sessionID, name)
}

// Clear removes the cart and the active discount together.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}

	s.metrics.IncCartOp("clear")
	if s.notifier != nil {
		s.notifier.CartCountUpdated(ctx, sessionID, 0)
	}
	return nil
}

// ApplyDiscountCode resolves the code against the fixed table. A match
// replaces any active discount; a miss forfeits it, so a shopper cannot
// keep a prior discount by typoing a new code.
func (s *service) ApplyDiscountCode(ctx context.Context, sessionID, code string) (*ApplyDiscountResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}

	discount, ok := discounts.Lookup(code)
	if !ok {
		if err := s.repo.ClearDiscount(ctx, sessionID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear discount")
		}
		s.metrics.IncDiscount("rejected")
		return &ApplyDiscountResult{Applied: false}, nil
	}

	if err := s.repo.SaveDiscount(ctx, sessionID, discount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save discount")
	}
	s.metrics.IncDiscount("applied")
	return &ApplyDiscountResult{Applied: true, Description: discount.Description}, nil
}

// Summary derives the pricing tuple fresh from the stored cart and
// discount. An empty cart short-circuits every figure to zero, stale
// discount or not.
func (s *service) Summary(ctx context.Context, sessionID string) (*types.PricingSummary, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.repo.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(lines) == 0 {
		return &types.PricingSummary{
			Subtotal:       decimal.Zero,
			Shipping:       decimal.Zero,
			Tax:            decimal.Zero,
			DiscountAmount: decimal.Zero,
			Total:          decimal.Zero,
		}, nil
	}

	discount, err := s.repo.LoadDiscount(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}

	shipping := s.pricing.ShippingFee
	if subtotal.GreaterThan(s.pricing.FreeShippingOver) {
		shipping = decimal.Zero
	}

	discountAmount := decimal.Zero
	if discount != nil {
		switch discount.Type {
		case enums.DiscountTypePercentage:
			discountAmount = subtotal.Mul(discount.Value).Div(decimal.NewFromInt(100))
		case enums.DiscountTypeFixed:
			discountAmount = discount.Value
		case enums.DiscountTypeShipping:
			shipping = decimal.Zero
		}
	}

	tax := subtotal.Mul(s.pricing.TaxRate)
	total := subtotal.Add(shipping).Add(tax).Sub(discountAmount)

	return &types.PricingSummary{
		Subtotal:        subtotal,
		Shipping:        shipping,
		Tax:             tax,
		DiscountAmount:  discountAmount,
		Total:           total,
		DiscountApplied: discount != nil,
		ItemCount:       countItems(lines),
	}, nil
}

// Items returns the stored cart lines for rendering.
func (s *service) Items(ctx context.Context, sessionID string) ([]types.CartLine, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	lines, err := s.repo.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return lines, nil
}

func (s *service) nameAt(ctx context.Context, sessionID string, index int) (string, error) {
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	lines, err := s.repo.LoadCart(ctx, sessionID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if index < 0 || index >= len(lines) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart line index out of range")
	}
	return lines[index].Name, nil
}

func countItems(lines []types.CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
