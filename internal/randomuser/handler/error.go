package handler

import (
	"errors"
	"net/http"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/service"

	"github.com/labstack/echo/v4"
)

// Helper to map errors to HTTP status and body
func httpError(c echo.Context, err error) (int, model.ErrorResponse) {
	var code string
	var msg string
	var status int

	var detail *model.ErrorDetail
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = model.CodeNotFound
		msg = "User not found"
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
		code = model.CodeBadRequest
		msg = "Invalid input"
	case errors.As(err, &detail):
		status = http.StatusBadRequest
		code = detail.Code
		msg = detail.Message
	default:
		status = http.StatusInternalServerError
		code = model.CodeInternalError
		msg = err.Error()
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg, RequestID: requestID(c)},
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: model.CodeBadRequest, Message: msg, RequestID: requestID(c)},
	})
}

func validationError(c echo.Context, err error) error {
	var detail *model.ErrorDetail
	if errors.As(err, &detail) {
		e := *detail
		e.RequestID = requestID(c)
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: e})
	}
	return badRequest(c, err.Error())
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
