package handler

import (
	"errors"
	"net/http"
	"strconv"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/service"
	"randomusers/internal/randomuser/util"

	"github.com/labstack/echo/v4"
)

// UsersPage handles GET /
func (h *UserHandler) UsersPage(c echo.Context) error {
	return h.renderList(c, http.StatusOK, "", "")
}

// PostUsersPage handles POST / with the `number` form field. A valid form
// runs the ingestion and redirects back to the list.
func (h *UserHandler) PostUsersPage(c echo.Context) error {
	value := c.FormValue("number")
	req, err := model.ParseLoadForm(value)
	if err != nil {
		return h.renderList(c, http.StatusOK, value, err.Error())
	}

	if _, err := h.Service.LoadUsers(c.Request().Context(), *req); err != nil {
		return h.renderList(c, http.StatusOK, value, err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

// UserPage handles GET /:id
func (h *UserHandler) UserPage(c echo.Context) error {
	user, err := h.Service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.renderError(c, err, "User not found")
	}
	return c.Render(http.StatusOK, TemplateUser, userPageData{Title: user.FullName(), User: user})
}

// RandomUserPage handles GET /random
func (h *UserHandler) RandomUserPage(c echo.Context) error {
	user, err := h.Service.GetRandomUser(c.Request().Context())
	if err != nil {
		return h.renderError(c, err, "No users available")
	}
	return c.Render(http.StatusOK, TemplateUser, userPageData{Title: user.FullName(), User: user})
}

func (h *UserHandler) renderList(c echo.Context, status int, number, formError string) error {
	req := model.ListUsersReq{Size: model.DefaultPageSize}
	if p := c.QueryParam("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			return h.renderError(c, service.ErrNotFound, "Invalid page")
		}
		req.Page = page
	}

	page, err := h.Service.ListUsers(c.Request().Context(), req)
	if err != nil {
		return h.renderError(c, err, "")
	}
	if page.Page > page.TotalPages() {
		return h.renderError(c, service.ErrNotFound, "Invalid page")
	}

	return c.Render(status, TemplateUserList, listPageData{
		Title:     "Random users",
		Page:      page,
		Number:    number,
		FormError: formError,
	})
}

func (h *UserHandler) renderError(c echo.Context, err error, notFound string) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.Render(http.StatusNotFound, TemplateError, errorPageData{
			Title: "Not found", Status: http.StatusNotFound, Message: notFound,
		})
	}
	util.GetLogger().Error("Page request failed", "path", c.Path(), "error", err)
	return c.Render(http.StatusInternalServerError, TemplateError, errorPageData{
		Title: "Error", Status: http.StatusInternalServerError, Message: "Something went wrong",
	})
}
