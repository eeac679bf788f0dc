package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/aromacraft/storefront-backend/pkg/db/models"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
)

// SubscribeInput is a signup from any page carrying the form.
type SubscribeInput struct {
	Email   string `json:"email" validate:"required,email"`
	Consent bool   `json:"consent"`
	Source  string `json:"source"`
}

// SubscribeResult distinguishes a fresh signup from a repeat one; both are
// success outcomes.
type SubscribeResult struct {
	AlreadySubscribed bool   `json:"already_subscribed"`
	Message           string `json:"message"`
}

// Service manages the append-only subscriber log.
type Service interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeResult, error)
}

type repository interface {
	FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error
}

type service struct {
	repo     repository
	validate *validator.Validate
}

// NewService builds a newsletter service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("newsletter repository required")
	}
	return &service{repo: repo, validate: validator.New()}, nil
}

// Subscribe records the email unless it is already on the list. Consent is
// mandatory; a repeat email is reported, not rejected.
func (s *service) Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeResult, error) {
	if !input.Consent {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please agree to receive promotional emails to subscribe")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "a valid email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check subscriber")
	}
	if existing != nil {
		return &SubscribeResult{
			AlreadySubscribed: true,
			Message:           "You are already subscribed to our newsletter!",
		}, nil
	}

	subscriber := &models.NewsletterSubscriber{Email: input.Email, Source: input.Source}
	if err := s.repo.Create(ctx, subscriber); err != nil {
		// Two concurrent signups can race past the existence check; the
		// unique index resolves it and the loser reads as already subscribed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &SubscribeResult{
				AlreadySubscribed: true,
				Message:           "You are already subscribed to our newsletter!",
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store subscriber")
	}

	return &SubscribeResult{
		Message: "Thank you for subscribing! Check your email for a welcome discount code.",
	}, nil
}
