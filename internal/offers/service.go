package offers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aromacraft/storefront-backend/internal/discounts"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/redis"
)

const featuredDealName = "featured"

// Offer is one entry on the special offers page.
type Offer struct {
	Title       string `json:"title"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// The offers page is static content; each card carries a code from the
// discount table.
var offerList = []Offer{
	{Title: "Subscriber Special", Code: "SUBSCRIBE30", Description: "30% off subscription"},
	{Title: "Buy 2 Get 1", Code: "BUY2GET1", Description: "20% off (Buy 2 Get 1 equivalent)"},
	{Title: "Free Shipping Weekend", Code: "FREESHIP", Description: "Free shipping"},
	{Title: "Brewing Gear Sale", Code: "BREW25", Description: "25% off brewing equipment"},
	{Title: "Student Discount", Code: "STUDENT20", Description: "20% student discount"},
	{Title: "Loyalty Bonus", Code: "DOUBLE", Description: "10% loyalty bonus"},
	{Title: "Welcome Offer", Code: "WELCOME10", Description: "10% welcome discount"},
}

// Remaining is the featured-deal countdown snapshot.
type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

type offerStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	SessionKey(sessionID, suffix string) string
	DealKey(name string) string
}

// Service exposes the offers page data, the deal countdown, and the
// claim-to-cart handoff.
type Service interface {
	Offers(ctx context.Context) []Offer
	Deal(ctx context.Context) (*Remaining, error)
	Claim(ctx context.Context, sessionID, code string) (*Offer, error)
	PendingCode(ctx context.Context, sessionID string) (string, error)
}

type service struct {
	store      offerStore
	window     time.Duration
	sessionTTL time.Duration
	now        func() time.Time
}

// NewService builds an offers service. The window is how far out the
// featured deal deadline gets pinned on first access.
func NewService(store offerStore, window, sessionTTL time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("offer store required")
	}
	if window <= 0 {
		return nil, fmt.Errorf("deal window must be positive")
	}
	return &service{
		store:      store,
		window:     window,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}, nil
}

// Offers returns the static offer cards.
func (s *service) Offers(_ context.Context) []Offer {
	out := make([]Offer, len(offerList))
	copy(out, offerList)
	return out
}

// Deal pins the countdown deadline on first access and reports the time
// left. The key carries the window as TTL, so an ended deal re-arms on the
// next visit.
func (s *service) Deal(ctx context.Context) (*Remaining, error) {
	key := s.store.DealKey(featuredDealName)
	deadline := s.now().Add(s.window).UnixMilli()

	if _, err := s.store.SetNX(ctx, key, strconv.FormatInt(deadline, 10), s.window); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "pin deal deadline")
	}

	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, goredis.Nil) {
		raw = strconv.FormatInt(deadline, 10)
	} else if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deal deadline")
	}

	pinned, parseErr := strconv.ParseInt(raw, 10, 64)
	if parseErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, parseErr, "corrupt deal deadline")
	}

	distance := time.UnixMilli(pinned).Sub(s.now())
	if distance <= 0 {
		return &Remaining{Expired: true}, nil
	}
	return &Remaining{
		Days:    int(distance / (24 * time.Hour)),
		Hours:   int(distance % (24 * time.Hour) / time.Hour),
		Minutes: int(distance % time.Hour / time.Minute),
		Seconds: int(distance % time.Minute / time.Second),
	}, nil
}

// Claim stores the code for the session's next cart visit. Unknown codes
// are rejected before anything is stored.
func (s *service) Claim(ctx context.Context, sessionID, code string) (*Offer, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer code is required")
	}
	if _, ok := discounts.Lookup(code); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
	}

	key := s.store.SessionKey(sessionID, redis.SessionKeyClaimedCode)
	if err := s.store.Set(ctx, key, code, s.sessionTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store claimed code")
	}

	for _, offer := range offerList {
		if offer.Code == code {
			claimed := offer
			return &claimed, nil
		}
	}
	return &Offer{Code: code}, nil
}

// PendingCode reads and deletes the claimed code in one step; the cart
// discount box consumes it on next load.
func (s *service) PendingCode(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	key := s.store.SessionKey(sessionID, redis.SessionKeyClaimedCode)
	code, err := s.store.GetDel(ctx, key)
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume claimed code")
	}
	return code, nil
}
