package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedRoleAccount creates an account bound to a role, creating the role
// on first use
func seedRoleAccount(t *testing.T, db *gorm.DB, auth0ID, roleName string) *models.Account {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where(models.Role{RoleName: roleName}).FirstOrCreate(&role).Error)

	account := models.Account{
		Auth0ID: auth0ID,
		Name:    "Test " + roleName,
		Email:   auth0ID + "@example.com",
		RoleID:  &role.ID,
	}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

// authRouter builds a router group with mocked authentication for the
// given identity and registers routes through the register callback
func authRouter(auth0ID, role string, register func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1", testutil.MockAuthMiddleware(auth0ID, role))
	register(group)
	return router
}

// doJSON performs a JSON request against the router and decodes the envelope
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be valid JSON")
	}
	return w, response
}

// itoa formats a record ID for a URL path
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// errorCode digs the error code out of a failure envelope
func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}
