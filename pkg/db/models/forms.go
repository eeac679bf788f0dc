package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRegistration is an append-only tasting/workshop signup.
type EventRegistration struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventTitle      string    `gorm:"column:event_title;not null;index" json:"event_title"`
	FirstName       string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string    `gorm:"column:last_name;not null" json:"last_name"`
	Email           string    `gorm:"column:email;not null" json:"email"`
	Phone           string    `gorm:"column:phone;not null;default:''" json:"phone"`
	Participants    int       `gorm:"column:participants;not null;default:1" json:"participants"`
	DietaryNotes    string    `gorm:"column:dietary_notes;not null;default:''" json:"dietary_notes"`
	NewsletterOptIn bool      `gorm:"column:newsletter_opt_in;not null;default:false" json:"newsletter_opt_in"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName pins the table name for gorm.
func (EventRegistration) TableName() string {
	return "event_registrations"
}

// BeforeCreate assigns an ID so inserts work on backends without a UUID
// column default.
func (e *EventRegistration) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewsletterSubscriber is a de-duplicated mailing list entry.
type NewsletterSubscriber struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Source    string    `gorm:"column:source;not null;default:''" json:"source"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName pins the table name for gorm.
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// BeforeCreate assigns an ID so inserts work on backends without a UUID
// column default.
func (n *NewsletterSubscriber) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
