package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/pkg/log"
)

// StatusAccepted - статус любой принятой заявки: бэкенда у форм нет.
const StatusAccepted = "accepted"

// Subscribe - подписка на рассылку. Имитирует запрос с задержкой
// submissions.newsletter_delay и всегда завершается успехом.
func (s *Service) Subscribe(ctx context.Context, req models.NewsletterRequest) (*models.Receipt, error) {
	const op = "service.submissions.Subscribe"

	req.Email = normalizeEmail(req.Email)

	return s.submit(ctx, op, models.SubmissionNewsletter, req.Email, req, s.cfg.Submissions.NewsletterDelay)
}

// Contact - сообщение с формы контактов.
func (s *Service) Contact(ctx context.Context, req models.ContactRequest) (*models.Receipt, error) {
	const op = "service.submissions.Contact"

	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	return s.submit(ctx, op, models.SubmissionContact, req.Email, req, 0)
}

// Donate - обещание пожертвования. Платёж не проводится.
func (s *Service) Donate(ctx context.Context, req models.DonationRequest) (*models.Receipt, error) {
	const op = "service.submissions.Donate"

	req.Email = normalizeEmail(req.Email)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Frequency == "" {
		req.Frequency = "one-time"
	}

	return s.submit(ctx, op, models.SubmissionDonation, req.Email, req, 0)
}

// submit - общий путь заявок: валидация -> троттлинг -> задержка -> квитанция.
//
// Ошибки:
//   - ErrInvalidArgument - запрос не прошёл валидацию;
//   - ErrRateLimited - превышен лимит заявок с email за окно (только при
//     включённом submissions.throttle_max);
//   - ctx.Err() - клиент ушёл во время задержки.
//
// Недоступность счётчика заявок не мешает приёму: форма всегда успешна.
func (s *Service) submit(ctx context.Context, op string, kind models.SubmissionKind, email string, req any, delay time.Duration) (*models.Receipt, error) {
	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("kind", string(kind)),
	)

	if err := s.validate.StructCtx(ctx, req); err != nil {
		verr := newValidationError(err)
		s.metrics.Submission(string(kind), "invalid")
		lg.Warn("submission_invalid", slog.String("fields", strings.Join(verr.Fields, ",")))

		return nil, fmt.Errorf("%s: %w", op, verr)
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, string(kind)+":"+email)
		if err != nil {
			lg.Warn("submission_throttle_unavailable", log.Err(err))
		} else if !allowed {
			s.metrics.Submission(string(kind), "throttled")
			lg.Warn("submission_throttled")

			return nil, fmt.Errorf("%s: %w", op, ErrRateLimited)
		}
	}

	if err := s.sleep(ctx, delay); err != nil {
		s.metrics.Submission(string(kind), "canceled")
		lg.Warn("submission_canceled", log.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rc := &models.Receipt{
		ID:          s.newID(),
		Kind:        kind,
		Status:      StatusAccepted,
		SubmittedAt: s.now().UTC(),
	}

	s.metrics.Submission(string(kind), StatusAccepted)
	lg.Info("submission_accepted", slog.String("receipt_id", rc.ID.String()))

	return rc, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// ValidationError - запрос формы не прошёл валидацию.
// Fields - "поле:правило" в json-именах, например "email:email".
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid argument: " + strings.Join(e.Fields, ",")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

func newValidationError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []string{err.Error()}}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}

	return &ValidationError{Fields: fields}
}

// newValidator - валидатор с json-именами полей в ошибках.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}
