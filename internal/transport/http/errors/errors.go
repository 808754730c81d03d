// errors стандартизирует ответы об ошибках HTTP-слоя сайта.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Классификация идёт по sentinel-ошибкам сервиса через errors.Is.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/pribylovaa/vocal-site/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError - единый формат для фронта.
// Code - короткий стабильный код для машиночитаемой обработки на FE.
// Message - безопасное человекочитаемое описание.
// RequestID - прокидывается из X-Request-Id, если есть (для трассировки).
// Home - ссылка восстановления для 404 (единственная кнопка "на главную").
type APIError struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
	Home      string   `json:"home,omitempty"`
}

// ErrorResponse - корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ErrBadRequest - локальная ошибка разбора запроса в хендлере (битый id, page, JSON).
var ErrBadRequest = stderrors.New("bad request")

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - service.ErrNotFound - 404 со ссылкой на главную;
//   - service.ErrInvalidArgument, ErrBadRequest - 400 (+ поля валидации, если есть);
//   - service.ErrRateLimited - 429;
//   - context.Canceled - 499, context.DeadlineExceeded - 504;
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	internal := ErrorResponse{Error: APIError{Code: "internal", Message: "internal error"}}

	if err == nil {
		return http.StatusInternalServerError, internal
	}

	switch {
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: APIError{
			Code:    "not_found",
			Message: "not found",
			Home:    "/",
		}}
	case stderrors.Is(err, service.ErrInvalidArgument), stderrors.Is(err, ErrBadRequest):
		resp := ErrorResponse{Error: APIError{Code: "invalid_argument", Message: "invalid argument"}}

		var verr *service.ValidationError
		if stderrors.As(err, &verr) {
			resp.Error.Fields = verr.Fields
			resp.Error.Message = "invalid fields: " + fieldNames(verr.Fields)
		}

		return http.StatusBadRequest, resp
	case stderrors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{Error: APIError{
			Code:    "resource_exhausted",
			Message: "too many submissions, try again later",
		}}
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, ErrorResponse{Error: APIError{Code: "canceled", Message: "canceled"}}
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Error: APIError{Code: "deadline_exceeded", Message: "deadline exceeded"}}
	default:
		return http.StatusInternalServerError, internal
	}
}

// WriteError - хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// fieldNames - "email:email,amount:gt" -> "email, amount".
func fieldNames(fields []string) string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		name, _, _ := strings.Cut(f, ":")
		names = append(names, name)
	}

	return strings.Join(names, ", ")
}
