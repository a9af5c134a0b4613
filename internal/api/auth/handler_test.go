package auth_test

import (
	"net/http"
	"testing"

	"round-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	testutil.SetupDB(t)
	r := testutil.Router()

	w := testutil.DoJSON(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Dan",
		"email":    "dan@example.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string `json:"token"`
	}
	testutil.Decode(t, w, &reg)
	assert.NotEmpty(t, reg.Token)

	// registered token works against an authenticated route
	w = testutil.DoJSON(t, r, http.MethodGet, "/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "dan@example.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	testutil.SetupDB(t)
	r := testutil.Router()

	w := testutil.DoJSON(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Dan",
		"email":    "dan@example.com",
		"password": "letters",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	testutil.SetupDB(t)
	r := testutil.Router()

	body := map[string]interface{}{
		"name":     "Dan",
		"email":    "dan@example.com",
		"password": "sup3rsecret",
	}
	w := testutil.DoJSON(t, r, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	testutil.SetupDB(t)
	r := testutil.Router()

	w := testutil.DoJSON(t, r, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Dan",
		"email":    "dan@example.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "dan@example.com",
		"password": "wrongpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	testutil.SetupDB(t)
	r := testutil.Router()

	w := testutil.DoJSON(t, r, http.MethodGet, "/rounds", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
