package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-api/middleware"
	"crm-api/services"
	"crm-api/store"
	"crm-api/utils"
)

type testAPI struct {
	router *gin.Engine
	tokens map[string]string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterBindingValidators())

	auth := services.NewAuthService(store.NewMemoryUserStore(), "test-secret", time.Hour, nil)
	notifications := services.NewNotificationService(store.NewMemoryNotificationStore(), nil)
	enquiries := services.NewEnquiryService(store.NewMemoryEnquiryStore(), notifications, nil)

	authCtl := NewAuthController(auth)
	enquiryCtl := NewEnquiryController(enquiries)
	notificationCtl := NewNotificationController(notifications)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/register", authCtl.Register)
	v1.POST("/login", authCtl.Login)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(auth))
	protected.GET("/profile", authCtl.GetProfile)
	protected.GET("/enquiries", enquiryCtl.List)
	protected.POST("/enquiries", enquiryCtl.Create)
	protected.GET("/enquiries/:id", enquiryCtl.Get)
	protected.PUT("/enquiries/:id", enquiryCtl.Update)
	protected.DELETE("/enquiries/:id", enquiryCtl.Delete)
	protected.GET("/notifications", notificationCtl.ListNotifications)
	protected.PATCH("/notifications/read-all", notificationCtl.MarkAllAsRead)

	return &testAPI{router: router, tokens: issueTokens(t, auth)}
}

// issueTokens registers the owner and the stranger and logs both in.
func issueTokens(t *testing.T, auth *services.AuthService) map[string]string {
	t.Helper()
	tokens := map[string]string{}
	for _, email := range []string{owner, stranger} {
		_, err := auth.Register(context.Background(), services.RegisterInput{
			Name:     "Test User",
			Email:    email,
			Password: "s3cretpass",
		})
		require.NoError(t, err)
		token, _, err := auth.Login(context.Background(), email, "s3cretpass")
		require.NoError(t, err)
		tokens[email] = token
	}
	return tokens
}

func (a *testAPI) do(t *testing.T, method, path, as string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[as])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

const (
	owner    = "priya@example.com"
	stranger = "arjun@example.com"
)

func createEnquiry(t *testing.T, api *testAPI) uint {
	t.Helper()
	w, out := api.do(t, http.MethodPost, "/api/v1/enquiries", owner, map[string]interface{}{
		"customer_name": "Asha Rao",
		"mobile_number": "9876543210",
		"product_name":  "Solar Inverter",
		"product_cost":  "45999.50",
		"address":       "12 MG Road",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := out["data"].(map[string]interface{})
	return uint(data["enquiry_id"].(float64))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	w, out := api.do(t, http.MethodGet, "/api/v1/enquiries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, out["success"])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginWithWrongPassword(t *testing.T) {
	api := newTestAPI(t)

	w, out := api.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    owner,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", out["error"])
}

func TestEnquiryLifecycle(t *testing.T) {
	api := newTestAPI(t)
	id := createEnquiry(t, api)
	path := "/api/v1/enquiries/" + jsonID(id)

	w, out := api.do(t, http.MethodGet, path, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Asha Rao", data["customer_name"])
	assert.Equal(t, "New", data["status"])
	assert.Equal(t, "12 MG Road", data["address"])

	w, out = api.do(t, http.MethodPut, path, owner, map[string]interface{}{"status": "In Progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "In Progress", out["data"].(map[string]interface{})["status"])

	w, out = api.do(t, http.MethodGet, "/api/v1/enquiries?status=In%20Progress", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), out["total"])

	w, _ = api.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, http.MethodGet, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnquiryValidationErrorsListFields(t *testing.T) {
	api := newTestAPI(t)

	w, out := api.do(t, http.MethodPost, "/api/v1/enquiries", owner, map[string]interface{}{
		"customer_name": "",
		"mobile_number": "12ab",
		"product_name":  "Inverter",
		"product_cost":  "10",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := out["fields"].(map[string]interface{})
	assert.Contains(t, fields, "mobile_number")

	w, out = api.do(t, http.MethodPost, "/api/v1/enquiries", owner, map[string]interface{}{
		"customer_name": "",
		"mobile_number": "9876543210",
		"product_name":  "Inverter",
		"product_cost":  "10",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields = out["fields"].(map[string]interface{})
	assert.Equal(t, "is required", fields["customer_name"])
}

func TestEnquiryIsHiddenFromOtherUsers(t *testing.T) {
	api := newTestAPI(t)
	id := createEnquiry(t, api)
	path := "/api/v1/enquiries/" + jsonID(id)

	w, _ := api.do(t, http.MethodGet, path, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(t, http.MethodPut, path, stranger, map[string]interface{}{"status": "Closed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(t, http.MethodDelete, path, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, out := api.do(t, http.MethodGet, "/api/v1/enquiries", stranger, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), out["total"])
}

func TestEnquiryBadID(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, http.MethodGet, "/api/v1/enquiries/abc", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationFeedAfterCreate(t *testing.T) {
	api := newTestAPI(t)
	createEnquiry(t, api)

	w, out := api.do(t, http.MethodGet, "/api/v1/notifications", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), out["unread_count"])
	sections := out["data"].([]interface{})
	require.Len(t, sections, 1)
	assert.Equal(t, "Today", sections[0].(map[string]interface{})["title"])

	w, out = api.do(t, http.MethodGet, "/api/v1/notifications?grouped=false", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["data"].([]interface{}), 1)

	w, out = api.do(t, http.MethodPatch, "/api/v1/notifications/read-all", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), out["updated"])

	w, out = api.do(t, http.MethodGet, "/api/v1/notifications", stranger, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, out["data"])
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestEnquiryDuplicateNumberConflicts(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]interface{}{
		"enquiry_number": "ENQ-20240612-CAFE0001",
		"customer_name":  "Asha Rao",
		"mobile_number":  "9876543210",
		"product_name":   "Solar Inverter",
		"product_cost":   "45999.50",
	}

	w, out := api.do(t, http.MethodPost, "/api/v1/enquiries", owner, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "ENQ-20240612-CAFE0001", data["enquiry_number"])

	w, out = api.do(t, http.MethodPost, "/api/v1/enquiries", stranger, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, out["success"])

	w, out = api.do(t, http.MethodGet, "/api/v1/enquiries", stranger, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, out["data"])
}

func TestEnquiryRejectsOversizedCost(t *testing.T) {
	api := newTestAPI(t)

	w, out := api.do(t, http.MethodPost, "/api/v1/enquiries", owner, map[string]interface{}{
		"customer_name": "Asha Rao",
		"mobile_number": "9876543210",
		"product_name":  "Solar Inverter",
		"product_cost":  "1e20",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := out["fields"].(map[string]interface{})
	assert.Contains(t, fields, "product_cost")
}
