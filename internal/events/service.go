package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aromacraft/storefront-backend/internal/newsletter"
	"github.com/aromacraft/storefront-backend/pkg/db/models"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

// RegistrationInput is the tasting/workshop signup form.
type RegistrationInput struct {
	EventTitle      string `json:"event_title" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Participants    int    `json:"participants" validate:"omitempty,min=1,max=4"`
	DietaryNotes    string `json:"dietary_notes"`
	NewsletterOptIn bool   `json:"newsletter_opt_in"`
}

// Service records event registrations.
type Service interface {
	Register(ctx context.Context, input RegistrationInput) (*models.EventRegistration, error)
	List(ctx context.Context, eventTitle string) ([]models.EventRegistration, error)
}

type repository interface {
	Create(ctx context.Context, registration *models.EventRegistration) error
	ListByEvent(ctx context.Context, eventTitle string) ([]models.EventRegistration, error)
}

type service struct {
	repo       repository
	newsletter newsletter.Service
	validate   *validator.Validate
	logg       *logger.Logger
}

// NewService builds an events service. The newsletter service and logger
// may be nil.
func NewService(repo repository, news newsletter.Service, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("events repository required")
	}
	return &service{
		repo:       repo,
		newsletter: news,
		validate:   validator.New(),
		logg:       logg,
	}, nil
}

// Register appends the signup and forwards an opt-in to the newsletter.
// The forward is best effort; the registration stands either way.
func (s *service) Register(ctx context.Context, input RegistrationInput) (*models.EventRegistration, error) {
	if input.Participants == 0 {
		input.Participants = 1
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "registration form is incomplete")
	}

	registration := &models.EventRegistration{
		EventTitle:      strings.TrimSpace(input.EventTitle),
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:           strings.TrimSpace(input.Phone),
		Participants:    input.Participants,
		DietaryNotes:    strings.TrimSpace(input.DietaryNotes),
		NewsletterOptIn: input.NewsletterOptIn,
	}
	if err := s.repo.Create(ctx, registration); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store registration")
	}

	if input.NewsletterOptIn && s.newsletter != nil {
		_, err := s.newsletter.Subscribe(ctx, newsletter.SubscribeInput{
			Email:   registration.Email,
			Consent: true,
			Source:  "events-page",
		})
		if err != nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("newsletter opt-in forward failed: %v", err))
		}
	}

	return registration, nil
}

// List returns registrations for ops review, optionally scoped to one event.
func (s *service) List(ctx context.Context, eventTitle string) ([]models.EventRegistration, error) {
	registrations, err := s.repo.ListByEvent(ctx, strings.TrimSpace(eventTitle))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list registrations")
	}
	return registrations, nil
}
