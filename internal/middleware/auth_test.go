package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTAuth(testSecret)(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsBadSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTAuth(testSecret)(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthStoresClaims(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID, gotRole interface{}
	next := func(c echo.Context) error {
		gotID = c.Get("account_id")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, JWTAuth(testSecret)(next)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	// JSON numbers decode as float64 inside jwt.MapClaims.
	assert.EqualValues(t, float64(7), gotID)
	assert.Equal(t, "CUSTOMER", gotRole)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := RequireRole("OWNER")

	cases := []struct {
		name string
		role interface{}
		want int
	}{
		{"allowed", "OWNER", http.StatusOK},
		{"wrong role", "CUSTOMER", http.StatusForbidden},
		{"missing role", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			require.NoError(t, mw(okHandler)(c))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
