package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind Kind) int {
	switch kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes any use case error. Internal errors never leak their text.
func FromError(c *gin.Context, err error) {
	kind := KindOf(err)
	if kind == KindInternal {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	code := CodeOf(err)
	Write(c, StatusOf(kind), code, messageFor(code))
}

var messages = map[string]string{
	"invalid_request":       "Dados inválidos.",
	"invalid_date":          "Data inválida.",
	"invalid_time":          "Hora inválida.",
	"invalid_date_or_time":  "Data ou hora inválida.",
	"invalid_status":        "Status inválido.",
	"invalid_state":         "Agendamento não pode ser alterado neste status.",
	"past_date":             "Não é possível agendar no passado.",
	"too_soon":              "Horário inválido.",
	"outside_working_hours": "Fora do horário de atendimento.",
	"barber_not_found":      "Barbeiro não encontrado.",
	"service_not_found":     "Serviço não encontrado.",
	"appointment_not_found": "Agendamento não encontrado.",
	"time_conflict":         "Conflito de horário.",
	"appointment_changed":   "O agendamento foi alterado por outra operação. Tente novamente.",
	"not_owner":             "Sem permissão para este agendamento.",
	"admin_only":            "Apenas administradores.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
