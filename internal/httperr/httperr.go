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

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Unauthorized and Forbidden abort the chain; middlewares use them.
func Unauthorized(c *gin.Context, code, message string) {
	Abort(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Abort(c, http.StatusForbidden, code, message)
}

// Respond translates a use case error into the JSON error envelope.
// Business codes map to 4xx with their pt-BR message; anything else is a 500
// and its detail never reaches the client.
func Respond(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	Write(c, statusFor(code), code, MessageFor(code))
}

func statusFor(code string) int {
	switch code {
	case "lead_not_found", "dispatch_not_found", "user_not_found":
		return http.StatusNotFound
	case "invalid_credentials":
		return http.StatusUnauthorized
	case "insufficient_permissions":
		return http.StatusForbidden
	case "payment_link_disabled":
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

var messages = map[string]string{
	"invalid_request":          "Dados inválidos.",
	"missing_name_or_phone":    "Preencha nome e telefone!",
	"invalid_status":           "Status inválido.",
	"invalid_section":          "Seção inválida.",
	"invalid_value":            "Informe um valor válido.",
	"invalid_date":             "Data inválida.",
	"invalid_time":             "Horário inválido.",
	"invalid_payment_amount":   "Informe um valor válido.",
	"missing_date_or_time":     "Informe nova data e horário.",
	"invalid_state":            "Operação não permitida para o status atual.",
	"lead_not_found":           "Paciente não encontrado.",
	"nothing_to_pay":           "Não há saldo em aberto para este paciente.",
	"payment_link_disabled":    "Link de pagamento não configurado.",
	"no_leads_selected":        "Selecione pelo menos um paciente!",
	"empty_template":           "Digite a mensagem personalizada!",
	"invalid_message_kind":     "Tipo de mensagem inválido.",
	"invalid_phone":            "Telefone inválido.",
	"dispatch_not_found":       "Disparo não encontrado.",
	"invalid_email":            "E-mail inválido.",
	"weak_password":            "A senha deve ter pelo menos 6 caracteres.",
	"invalid_role":             "Perfil inválido.",
	"invalid_credentials":      "E-mail ou senha incorretos.",
	"insufficient_permissions": "Você não tem permissão para esta ação.",
	"user_not_found":           "Usuário não encontrado.",
	"invalid_export_format":    "Formato de exportação inválido.",
	"invalid_month":            "Mês inválido.",
	"invalid_year":             "Ano inválido.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Não foi possível concluir a operação."
}
