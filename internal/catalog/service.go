package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aromacraft/storefront-backend/pkg/db/models"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/redis"
)

type intentStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	SessionKey(sessionID, suffix string) string
}

type lister interface {
	ListProducts(ctx context.Context, query listQuery) ([]models.Product, string, error)
	Recommended(ctx context.Context, limit int) ([]models.Product, error)
}

// Service exposes the catalog read paths and the landing-page search
// handoff.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Recommended(ctx context.Context) ([]models.Product, error)
	SaveSearchIntent(ctx context.Context, sessionID, query string) error
	ConsumeSearchIntent(ctx context.Context, sessionID string) (string, error)
}

type service struct {
	repo    lister
	intents intentStore
	ttl     time.Duration
}

// NewService builds a catalog service. The intent store may be nil when the
// search handoff is not wired.
func NewService(repo lister, intents intentStore, ttl time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, intents: intents, ttl: ttl}, nil
}

// List returns one catalog page. An empty page is a result, not an error.
func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	query := input.Filters.Query
	if input.ConsumeIntent && strings.TrimSpace(query) == "" {
		pending, err := s.ConsumeSearchIntent(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}
		query = pending
	}

	filters := input.Filters
	filters.Query = query

	products, nextCursor, err := s.repo.ListProducts(ctx, listQuery{
		Filters:    filters,
		Sort:       input.Sort,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	return &ListResult{
		Products:     products,
		NextCursor:   nextCursor,
		AppliedQuery: strings.TrimSpace(query),
	}, nil
}

// Recommended returns the flagged trio for the cart page.
func (s *service) Recommended(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.Recommended(ctx, 3)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recommended products")
	}
	return products, nil
}

// SaveSearchIntent stores the landing-page query for the next catalog view.
func (s *service) SaveSearchIntent(ctx context.Context, sessionID, query string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if s.intents == nil {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	key := s.intents.SessionKey(sessionID, redis.SessionKeySearchQuery)
	if err := s.intents.Set(ctx, key, query, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save search intent")
	}
	return nil
}

// ConsumeSearchIntent reads and deletes the pending query in one step; a
// second call returns empty.
func (s *service) ConsumeSearchIntent(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" || s.intents == nil {
		return "", nil
	}
	key := s.intents.SessionKey(sessionID, redis.SessionKeySearchQuery)
	pending, err := s.intents.GetDel(ctx, key)
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume search intent")
	}
	return pending, nil
}
