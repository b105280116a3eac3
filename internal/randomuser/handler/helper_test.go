package handler

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"randomusers/internal/randomuser/model"

	goversion "github.com/caarlos0/go-version"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "admin-secret"

func setupServer(t *testing.T, svc *MockUserService) *echo.Echo {
	t.Helper()

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Use(RequestIDMiddleware)

	h := NewUserHandler(svc, goversion.Info{GitVersion: "v1.2.3"})
	e.GET("/health", h.HealthCheck)
	e.GET("/version", h.GetVersion)
	e.GET("/", h.UsersPage)
	e.POST("/", h.PostUsersPage)
	e.GET("/random", h.RandomUserPage)
	e.GET("/:id", h.UserPage)

	v1 := e.Group("/api/v1")
	v1.GET("/users", h.ListUsers)
	v1.DELETE("/users", h.DeleteUsers, AdminTokenMiddleware(testAdminToken))
	v1.GET("/users/random", h.GetRandomUser)
	v1.POST("/users/load", h.PostLoadUsers)
	v1.GET("/users/:id", h.GetUser)
	return e
}

func performRequest(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(b))
	} else {
		bodyReader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func sampleUser(id, first string) *model.User {
	return &model.User{
		ID:        id,
		Gender:    "female",
		FirstName: first,
		LastName:  "Doe",
		Location: map[string]any{
			"street":  map[string]any{"number": float64(12), "name": "Main St"},
			"city":    "Springfield",
			"country": "USA",
		},
		Email:   strings.ToLower(first) + "@example.com",
		Phone:   "555-0100",
		Picture: "https://randomuser.me/api/portraits/thumb/women/1.jpg",
	}
}
