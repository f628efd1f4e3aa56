//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"treebox/internal/handler/dto/request"
	"treebox/internal/handler/dto/response"
	"treebox/tests/common/dbtest"
	"treebox/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginAdmin(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body response.LoginResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	require.NotEmpty(t, body.AccessToken, "access token missing from login response")

	return body.AccessToken
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, displayName, role string) string {
	t.Helper()
	dbtest.CreateTestAdmin(t, db, email, displayName, role)
	return LoginAdmin(t, router, email, dbtest.TestPassword)
}
