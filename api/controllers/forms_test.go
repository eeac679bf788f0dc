package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	eventssvc "github.com/aromacraft/storefront-backend/internal/events"
	newslettersvc "github.com/aromacraft/storefront-backend/internal/newsletter"
	"github.com/aromacraft/storefront-backend/pkg/db/models"
)

type stubEventsService struct {
	inputs []eventssvc.RegistrationInput
}

func (s *stubEventsService) Register(ctx context.Context, input eventssvc.RegistrationInput) (*models.EventRegistration, error) {
	s.inputs = append(s.inputs, input)
	return &models.EventRegistration{
		EventTitle: input.EventTitle,
		FirstName:  input.FirstName,
	}, nil
}

func (s *stubEventsService) List(ctx context.Context, eventTitle string) ([]models.EventRegistration, error) {
	return nil, nil
}

type stubNewsletterService struct {
	inputs []newslettersvc.SubscribeInput
	result *newslettersvc.SubscribeResult
}

func (s *stubNewsletterService) Subscribe(ctx context.Context, input newslettersvc.SubscribeInput) (*newslettersvc.SubscribeResult, error) {
	s.inputs = append(s.inputs, input)
	return s.result, nil
}

func TestEventsRegisterCreated(t *testing.T) {
	svc := &stubEventsService{}
	handler := EventsRegister(svc, nil)

	body := `{
		"event_title": "Latte Art Workshop",
		"first_name": "Ada",
		"last_name": "T",
		"email": "ada@example.com",
		"participants": 2,
		"newsletter_opt_in": true
	}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/events/registrations", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if len(svc.inputs) != 1 || svc.inputs[0].Participants != 2 || !svc.inputs[0].NewsletterOptIn {
		t.Fatalf("unexpected input: %+v", svc.inputs)
	}
}

func TestEventsRegisterTooManyParticipants(t *testing.T) {
	handler := EventsRegister(&stubEventsService{}, nil)

	body := `{
		"event_title": "Latte Art Workshop",
		"first_name": "Ada",
		"last_name": "T",
		"email": "ada@example.com",
		"participants": 5
	}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/events/registrations", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestNewsletterSubscribeDefaultsSource(t *testing.T) {
	svc := &stubNewsletterService{result: &newslettersvc.SubscribeResult{Message: "Thank you for subscribing! Check your email for a welcome discount code."}}
	handler := NewsletterSubscribe(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/newsletter/subscribe", `{"email":"ada@example.com","consent":true}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.inputs) != 1 || svc.inputs[0].Source != "offers-page" {
		t.Fatalf("unexpected input: %+v", svc.inputs)
	}

	var envelope struct {
		Data newslettersvc.SubscribeResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Message == "" {
		t.Fatal("expected a subscription message")
	}
}

func TestNewsletterSubscribeRequiresEmail(t *testing.T) {
	handler := NewsletterSubscribe(&stubNewsletterService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/newsletter/subscribe", `{"consent":true}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
