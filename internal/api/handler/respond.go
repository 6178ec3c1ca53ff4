package handler

import "github.com/labstack/echo/v4"

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Envelope is the uniform response shape across all endpoints:
// {success, data, error}.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error"`
}

// OK renders a successful envelope.
func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail renders a failed envelope.
func Fail(c echo.Context, status int, body *ErrorBody) error {
	return c.JSON(status, Envelope{Success: false, Error: body})
}
