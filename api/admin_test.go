package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAdminHandler_login(t *testing.T) {
	mockAdmins := &MockAdminUseCase{}
	handler := NewAdminHandler(mockAdmins)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "root", Password: "hunter2"})
	c.Request = httptest.NewRequest("POST", "/api/admin/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAdmins.On("Login", c.Request.Context(), "root", "hunter2").Return("a-token", nil).Once()

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "a-token", response["token"])
	mockAdmins.AssertExpectations(t)
}

func TestAdminHandler_login_InvalidCredentials(t *testing.T) {
	mockAdmins := &MockAdminUseCase{}
	handler := NewAdminHandler(mockAdmins)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "root", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/api/admin/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAdmins.On("Login", c.Request.Context(), "root", "wrong").Return("", domain.ErrInvalidCredentials).Once()

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_register_DuplicateUsername(t *testing.T) {
	mockAdmins := &MockAdminUseCase{}
	handler := NewAdminHandler(mockAdmins)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(credentialsRequest{Username: "root", Password: "hunter2"})
	c.Request = httptest.NewRequest("POST", "/api/admin/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockAdmins.On("Register", c.Request.Context(), "root", "hunter2").Return(domain.ErrUsernameTaken).Once()

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
