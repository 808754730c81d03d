package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionKind - вид формы.
type SubmissionKind string

const (
	SubmissionNewsletter SubmissionKind = "newsletter"
	SubmissionContact    SubmissionKind = "contact"
	SubmissionDonation   SubmissionKind = "donation"
)

// NewsletterRequest - подписка на рассылку из футера.
type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// ContactRequest - сообщение со страницы контактов.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"omitempty,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

// DonationRequest - обещание пожертвования со страницы donate.
type DonationRequest struct {
	Email     string `json:"email"     validate:"required,email,max=254"`
	Amount    int64  `json:"amount"    validate:"required,gt=0"`
	Currency  string `json:"currency"  validate:"required,oneof=KES USD EUR GBP"`
	Frequency string `json:"frequency" validate:"required,oneof=one-time monthly"`
}

// Receipt - подтверждение симулированной отправки формы.
// Формы не имеют бэкенда и всегда завершаются успехом.
type Receipt struct {
	ID          uuid.UUID
	Kind        SubmissionKind
	Status      string
	SubmittedAt time.Time
}
