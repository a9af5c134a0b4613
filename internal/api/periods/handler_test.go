package periods_test

import (
	"fmt"
	"net/http"
	"testing"

	"round-tracker/internal/domain/periods"
	"round-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListDatePeriods(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	u := testutil.CreateUser(t, db, "a@example.com")
	tok := testutil.Token(t, u.ID)

	w := testutil.DoJSON(t, r, http.MethodPost, "/date-periods", tok, map[string]interface{}{
		"name":       "Week 16",
		"start_date": "2025-04-14",
		"end_date":   "2025-04-20",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.DoJSON(t, r, http.MethodGet, "/date-periods", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DatePeriods []periods.DatePeriod `json:"date_periods"`
	}
	testutil.Decode(t, w, &resp)
	require.Len(t, resp.DatePeriods, 1)
	assert.Equal(t, "Week 16", resp.DatePeriods[0].Name)
	assert.Equal(t, "2025-04-14", resp.DatePeriods[0].StartDate)
	assert.Equal(t, "2025-04-20", resp.DatePeriods[0].EndDate)
}

func TestDatePeriodWindowValidation(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	u := testutil.CreateUser(t, db, "a@example.com")
	tok := testutil.Token(t, u.ID)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"end equals start", "2025-04-14", "2025-04-14"},
		{"end before start", "2025-04-14", "2025-04-13"},
		{"malformed date", "14/04/2025", "2025-04-20"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.DoJSON(t, r, http.MethodPost, "/date-periods", tok, map[string]interface{}{
				"name":       "Bad",
				"start_date": tc.start,
				"end_date":   tc.end,
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	require.NoError(t, db.Model(&periods.DatePeriod{}).Count(&count).Error)
	assert.Zero(t, count, "no rows may be written on validation failure")
}

func TestUpdateDatePeriodValidatesWindow(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	u := testutil.CreateUser(t, db, "a@example.com")
	tok := testutil.Token(t, u.ID)

	p := periods.DatePeriod{Name: "Week 16", StartDate: "2025-04-14", EndDate: "2025-04-20"}
	require.NoError(t, db.Create(&p).Error)

	w := testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/date-periods/%d", p.ID), tok, map[string]interface{}{
		"name":       "Week 16",
		"start_date": "2025-04-14",
		"end_date":   "2025-04-14",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/date-periods/%d", p.ID), tok, map[string]interface{}{
		"name":       "Week 16 adjusted",
		"start_date": "2025-04-14",
		"end_date":   "2025-04-21",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got periods.DatePeriod
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, "Week 16 adjusted", got.Name)
	assert.Equal(t, "2025-04-21", got.EndDate)
}

func TestUpdateAndDeleteMissingDatePeriod(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	u := testutil.CreateUser(t, db, "a@example.com")
	tok := testutil.Token(t, u.ID)

	w := testutil.DoJSON(t, r, http.MethodPut, "/date-periods/999", tok, map[string]interface{}{
		"name":       "Nope",
		"start_date": "2025-04-14",
		"end_date":   "2025-04-20",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoJSON(t, r, http.MethodDelete, "/date-periods/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDatePeriodInvalidatesCachedListing(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	u := testutil.CreateUser(t, db, "a@example.com")
	tok := testutil.Token(t, u.ID)

	p := periods.DatePeriod{Name: "Week 16", StartDate: "2025-04-14", EndDate: "2025-04-20"}
	require.NoError(t, db.Create(&p).Error)

	// prime the cache
	w := testutil.DoJSON(t, r, http.MethodGet, "/date-periods", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/date-periods/%d", p.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, r, http.MethodGet, "/date-periods", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DatePeriods []periods.DatePeriod `json:"date_periods"`
	}
	testutil.Decode(t, w, &resp)
	assert.Empty(t, resp.DatePeriods)
}
