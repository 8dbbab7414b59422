// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт
// статус-код, человекочитаемое сообщение и, опционально, данные и токены.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле StatusCode дублирует HTTP-статус в теле.
// Поля AccessToken и RefreshToken заполняются только ответами аутентификации.
type Response struct {
	StatusCode   int    `json:"status_code"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	StatusCode int    `json:"status_code" example:"400"`
	Message    string `json:"message" example:"invalid request body"`
}

// OK возвращает успешный Response с сообщением и данными.
func OK(statusCode int, msg string, data any) Response {
	return Response{
		StatusCode: statusCode,
		Message:    msg,
		Data:       data,
	}
}

// OKWithTokens возвращает успешный Response с парой токенов.
// Refresh-токен дублируется в теле для клиентов без поддержки cookie.
func OKWithTokens(statusCode int, msg, accessToken, refreshToken string, data any) Response {
	return Response{
		StatusCode:   statusCode,
		Message:      msg,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Data:         data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(statusCode int, msg string) ErrorResponse {
	return ErrorResponse{
		StatusCode: statusCode,
		Message:    msg,
	}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is shorter than allowed", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is longer than allowed", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		StatusCode: 422,
		Message:    strings.Join(errsMsgs, ", "),
	}
}
