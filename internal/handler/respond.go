package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_directory/internal/domain"
)

type successResponse struct {
	Data interface{} `json:"data"`
}

type errorResponse struct {
	Error *domain.Error `json:"error"`
}

// ResponseSuccess wraps the payload in the {data} envelope.
func ResponseSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, successResponse{Data: data})
}

// ResponseError maps the taxonomy code to an HTTP status and emits the
// {error:{code,message,fields}} envelope. Anything that is not a
// *domain.Error is surfaced as an opaque internal error.
func ResponseError(c echo.Context, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.NewInternalError()
	}
	return c.JSON(statusForCode(de.Code), errorResponse{Error: de})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeInvalidInput:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
