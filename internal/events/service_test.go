package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aromacraft/storefront-backend/internal/newsletter"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
)

func setupEventsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS event_registrations (
  id TEXT PRIMARY KEY,
  event_title TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  participants INTEGER NOT NULL DEFAULT 1,
  dietary_notes TEXT NOT NULL DEFAULT '',
  newsletter_opt_in INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

type stubNewsletter struct {
	subscribed []newsletter.SubscribeInput
}

func (s *stubNewsletter) Subscribe(_ context.Context, input newsletter.SubscribeInput) (*newsletter.SubscribeResult, error) {
	s.subscribed = append(s.subscribed, input)
	return &newsletter.SubscribeResult{}, nil
}

func validRegistration() RegistrationInput {
	return RegistrationInput{
		EventTitle:   "Latte Art Workshop",
		FirstName:    "Avery",
		LastName:     "Bean",
		Email:        "Avery@Example.com",
		Phone:        "555-0147",
		Participants: 2,
		DietaryNotes: "none",
	}
}

func TestRegisterAppendsRegistration(t *testing.T) {
	db := setupEventsTestDB(t)
	svc, err := NewService(NewRepository(db), nil, nil)
	require.NoError(t, err)

	registration, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.Equal(t, "Latte Art Workshop", registration.EventTitle)
	require.Equal(t, "avery@example.com", registration.Email)
	require.Equal(t, 2, registration.Participants)

	stored, err := svc.List(context.Background(), "Latte Art Workshop")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestRegisterDefaultsParticipants(t *testing.T) {
	db := setupEventsTestDB(t)
	svc, err := NewService(NewRepository(db), nil, nil)
	require.NoError(t, err)

	input := validRegistration()
	input.Participants = 0
	registration, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, registration.Participants)
}

func TestRegisterRejectsTooManyParticipants(t *testing.T) {
	db := setupEventsTestDB(t)
	svc, err := NewService(NewRepository(db), nil, nil)
	require.NoError(t, err)

	input := validRegistration()
	input.Participants = 5
	_, err = svc.Register(context.Background(), input)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestRegisterRequiresNames(t *testing.T) {
	db := setupEventsTestDB(t)
	svc, err := NewService(NewRepository(db), nil, nil)
	require.NoError(t, err)

	input := validRegistration()
	input.FirstName = ""
	_, err = svc.Register(context.Background(), input)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestRegisterForwardsNewsletterOptIn(t *testing.T) {
	db := setupEventsTestDB(t)
	news := &stubNewsletter{}
	svc, err := NewService(NewRepository(db), news, nil)
	require.NoError(t, err)

	input := validRegistration()
	input.NewsletterOptIn = true
	_, err = svc.Register(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, news.subscribed, 1)
	require.Equal(t, "avery@example.com", news.subscribed[0].Email)
	require.True(t, news.subscribed[0].Consent)
	require.Equal(t, "events-page", news.subscribed[0].Source)
}

func TestRegisterWithoutOptInSkipsNewsletter(t *testing.T) {
	db := setupEventsTestDB(t)
	news := &stubNewsletter{}
	svc, err := NewService(NewRepository(db), news, nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.Empty(t, news.subscribed)
}

func TestListAllRegistrations(t *testing.T) {
	db := setupEventsTestDB(t)
	svc, err := NewService(NewRepository(db), nil, nil)
	require.NoError(t, err)
	ctx := context.Background()

	first := validRegistration()
	_, err = svc.Register(ctx, first)
	require.NoError(t, err)

	second := validRegistration()
	second.EventTitle = "Cupping Session"
	_, err = svc.Register(ctx, second)
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
