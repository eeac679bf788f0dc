package catalog

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aromacraft/storefront-backend/pkg/db/models"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
)

type stubLister struct {
	lastQuery listQuery
	products  []models.Product
	next      string
}

func (s *stubLister) ListProducts(_ context.Context, query listQuery) ([]models.Product, string, error) {
	s.lastQuery = query
	return s.products, s.next, nil
}

func (s *stubLister) Recommended(_ context.Context, limit int) ([]models.Product, error) {
	if limit < len(s.products) {
		return s.products[:limit], nil
	}
	return s.products, nil
}

type memoryIntentStore struct {
	values map[string]string
}

func newMemoryIntentStore() *memoryIntentStore {
	return &memoryIntentStore{values: map[string]string{}}
}

func (m *memoryIntentStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if v, ok := value.(string); ok {
		m.values[key] = v
	}
	return nil
}

func (m *memoryIntentStore) GetDel(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", goredis.Nil
	}
	delete(m.values, key)
	return value, nil
}

func (m *memoryIntentStore) SessionKey(sessionID, suffix string) string {
	return "ac:session:" + sessionID + ":" + suffix
}

func TestSearchIntentIsOneShot(t *testing.T) {
	intents := newMemoryIntentStore()
	svc, err := NewService(&stubLister{}, intents, time.Hour)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()

	if err := svc.SaveSearchIntent(ctx, "sid", "ethiopian"); err != nil {
		t.Fatalf("save intent: %v", err)
	}

	pending, err := svc.ConsumeSearchIntent(ctx, "sid")
	if err != nil {
		t.Fatalf("consume intent: %v", err)
	}
	if pending != "ethiopian" {
		t.Fatalf("expected pending query, got %q", pending)
	}

	pending, err = svc.ConsumeSearchIntent(ctx, "sid")
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if pending != "" {
		t.Fatalf("expected intent consumed exactly once, got %q", pending)
	}
}

func TestListConsumesIntentWhenNoExplicitQuery(t *testing.T) {
	intents := newMemoryIntentStore()
	lister := &stubLister{}
	svc, err := NewService(lister, intents, time.Hour)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()

	if err := svc.SaveSearchIntent(ctx, "sid", "dark roast"); err != nil {
		t.Fatalf("save intent: %v", err)
	}

	result, err := svc.List(ctx, ListInput{ConsumeIntent: true, SessionID: "sid"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if lister.lastQuery.Filters.Query != "dark roast" {
		t.Fatalf("expected consumed query forwarded, got %q", lister.lastQuery.Filters.Query)
	}
	if result.AppliedQuery != "dark roast" {
		t.Fatalf("expected applied query echoed, got %q", result.AppliedQuery)
	}

	result, err = svc.List(ctx, ListInput{ConsumeIntent: true, SessionID: "sid"})
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if result.AppliedQuery != "" {
		t.Fatalf("expected intent gone on second list, got %q", result.AppliedQuery)
	}
}

func TestListExplicitQueryWinsOverIntent(t *testing.T) {
	intents := newMemoryIntentStore()
	lister := &stubLister{}
	svc, err := NewService(lister, intents, time.Hour)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()

	if err := svc.SaveSearchIntent(ctx, "sid", "espresso"); err != nil {
		t.Fatalf("save intent: %v", err)
	}

	result, err := svc.List(ctx, ListInput{
		Filters:       ListFilters{Query: "grinder"},
		ConsumeIntent: true,
		SessionID:     "sid",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.AppliedQuery != "grinder" {
		t.Fatalf("expected explicit query applied, got %q", result.AppliedQuery)
	}
	if len(intents.values) != 1 {
		t.Fatal("expected stored intent untouched when explicit query given")
	}
}

func TestSaveSearchIntentValidation(t *testing.T) {
	svc, err := NewService(&stubLister{}, newMemoryIntentStore(), time.Hour)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	appErr := pkgerrors.As(svc.SaveSearchIntent(context.Background(), "", "coffee"))
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing session")
	}
	appErr = pkgerrors.As(svc.SaveSearchIntent(context.Background(), "sid", "   "))
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank query")
	}
}

func TestParseSortMode(t *testing.T) {
	if mode, err := ParseSortMode(""); err != nil || mode != SortName {
		t.Fatalf("expected empty input to default to name sort, got %s %v", mode, err)
	}
	if mode, err := ParseSortMode("price_desc"); err != nil || mode != SortPriceDesc {
		t.Fatalf("expected price_desc, got %s %v", mode, err)
	}
	if _, err := ParseSortMode("cheapest"); err == nil {
		t.Fatal("expected error for unknown sort mode")
	}
}
