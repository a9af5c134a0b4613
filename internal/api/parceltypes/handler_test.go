package parceltypes_test

import (
	"fmt"
	"net/http"
	"testing"

	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/rounds"
	"round-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRound(t *testing.T, db *gorm.DB, userID uint, name string) rounds.Round {
	t.Helper()
	r := rounds.Round{UserID: userID, Name: name, Active: true}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func parcelTypeBody(roundID uint, name string, weight, length, rate float64) map[string]interface{} {
	return map[string]interface{}{
		"round_id":   roundID,
		"name":       name,
		"max_weight": weight,
		"max_length": length,
		"rate":       rate,
	}
}

func TestCreateParcelTypeRoundTrip(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	tok := testutil.Token(t, alice.ID)

	rd := seedRound(t, db, alice.ID, "Morning")

	w := testutil.DoJSON(t, r, http.MethodPost, "/parcel-types", tok, parcelTypeBody(rd.ID, "Parcel", 2.0, 100.0, 0.94))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	testutil.Decode(t, w, &created)

	var pt rounds.ParcelType
	require.NoError(t, db.First(&pt, created.ID).Error)
	assert.Equal(t, "Parcel", pt.Name)
	assert.Equal(t, 2.0, pt.MaxWeight)
	assert.Equal(t, 100.0, pt.MaxLength)
	assert.Equal(t, 0.94, pt.Rate)
	assert.Equal(t, rd.ID, pt.RoundID)
}

func TestCreateParcelTypeRejectsZeroNumericAsMissing(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	tok := testutil.Token(t, alice.ID)

	rd := seedRound(t, db, alice.ID, "Morning")

	// zero is a legal value, the request must not be rejected
	w := testutil.DoJSON(t, r, http.MethodPost, "/parcel-types", tok, parcelTypeBody(rd.ID, "Letter", 0, 0, 0))
	assert.Equal(t, http.StatusCreated, w.Code)

	// a genuinely absent field still fails validation
	w = testutil.DoJSON(t, r, http.MethodPost, "/parcel-types", tok, map[string]interface{}{
		"round_id": rd.ID,
		"name":     "Letter",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateParcelTypeRoundOwnership(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	rd := seedRound(t, db, alice.ID, "Morning")

	// missing round is a validation failure
	w := testutil.DoJSON(t, r, http.MethodPost, "/parcel-types", testutil.Token(t, alice.ID), parcelTypeBody(rd.ID+99, "Parcel", 2, 100, 0.94))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// someone else's round is forbidden
	w = testutil.DoJSON(t, r, http.MethodPost, "/parcel-types", testutil.Token(t, bob.ID), parcelTypeBody(rd.ID, "Parcel", 2, 100, 0.94))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&rounds.ParcelType{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateParcelTypesBulk(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	tok := testutil.Token(t, alice.ID)

	rd := seedRound(t, db, alice.ID, "Morning")

	w := testutil.DoJSON(t, r, http.MethodPost, "/parcel-types/bulk", tok, map[string]interface{}{
		"round_id": rd.ID,
		"parcel_types": []map[string]interface{}{
			{"name": "Small", "max_weight": 2.0, "max_length": 45.0, "rate": 0.74},
			{"name": "Medium", "max_weight": 10.0, "max_length": 61.0, "rate": 0.94},
			{"name": "Large", "max_weight": 15.0, "max_length": 100.0, "rate": 1.24},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		IDs []uint `json:"ids"`
	}
	testutil.Decode(t, w, &resp)
	assert.Len(t, resp.IDs, 3)

	var count int64
	require.NoError(t, db.Model(&rounds.ParcelType{}).Where("round_id = ?", rd.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestCreateParcelTypesBulkRejectsEmptyList(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	rd := seedRound(t, db, alice.ID, "Morning")

	w := testutil.DoJSON(t, r, http.MethodPost, "/parcel-types/bulk", testutil.Token(t, alice.ID), map[string]interface{}{
		"round_id":     rd.ID,
		"parcel_types": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListParcelTypesIsOwnerScoped(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	ra := seedRound(t, db, alice.ID, "Morning")
	rb := seedRound(t, db, bob.ID, "Weekend")
	require.NoError(t, db.Create(&rounds.ParcelType{RoundID: ra.ID, Name: "Small", MaxWeight: 2, MaxLength: 45, Rate: 0.74}).Error)
	require.NoError(t, db.Create(&rounds.ParcelType{RoundID: rb.ID, Name: "Other", MaxWeight: 5, MaxLength: 50, Rate: 1.10}).Error)

	w := testutil.DoJSON(t, r, http.MethodGet, "/parcel-types", testutil.Token(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ParcelTypes []rounds.ParcelType `json:"parcel_types"`
		Rounds      []rounds.Round      `json:"rounds"`
	}
	testutil.Decode(t, w, &resp)
	require.Len(t, resp.ParcelTypes, 1)
	assert.Equal(t, "Small", resp.ParcelTypes[0].Name)
	require.NotNil(t, resp.ParcelTypes[0].Round)
	assert.Equal(t, "Morning", resp.ParcelTypes[0].Round.Name)
	require.Len(t, resp.Rounds, 1)
	assert.Equal(t, "Morning", resp.Rounds[0].Name)
}

func TestUpdateParcelTypeMoveValidatesTargetRound(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	ra := seedRound(t, db, alice.ID, "Morning")
	rb := seedRound(t, db, bob.ID, "Weekend")
	pt := rounds.ParcelType{RoundID: ra.ID, Name: "Small", MaxWeight: 2, MaxLength: 45, Rate: 0.74}
	require.NoError(t, db.Create(&pt).Error)

	// moving onto someone else's round is forbidden
	w := testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/parcel-types/%d", pt.ID), testutil.Token(t, alice.ID), parcelTypeBody(rb.ID, "Small", 2, 45, 0.74))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// moving between the caller's own rounds works
	ra2 := seedRound(t, db, alice.ID, "Evening")
	w = testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/parcel-types/%d", pt.ID), testutil.Token(t, alice.ID), parcelTypeBody(ra2.ID, "Small v2", 3, 45, 0.84))
	require.Equal(t, http.StatusOK, w.Code)

	var got rounds.ParcelType
	require.NoError(t, db.First(&got, pt.ID).Error)
	assert.Equal(t, ra2.ID, got.RoundID)
	assert.Equal(t, "Small v2", got.Name)
	assert.Equal(t, 3.0, got.MaxWeight)
}

func TestDeleteParcelTypeCascadesToActivities(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")

	rd := seedRound(t, db, alice.ID, "Morning")
	pt := rounds.ParcelType{RoundID: rd.ID, Name: "Small", MaxWeight: 2, MaxLength: 45, Rate: 0.74}
	require.NoError(t, db.Create(&pt).Error)
	act := activities.Activity{UserID: alice.ID, ParcelTypeID: pt.ID, ActivityDate: "2025-04-14", Quantity: 7}
	require.NoError(t, db.Create(&act).Error)
	img := activities.ActivityImage{ActivityID: act.ID, ImagePath: "activity_images/a.jpg"}
	require.NoError(t, db.Create(&img).Error)

	w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/parcel-types/%d", pt.ID), testutil.Token(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.ErrorIs(t, db.First(&rounds.ParcelType{}, pt.ID).Error, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, db.First(&activities.Activity{}, act.ID).Error, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, db.First(&activities.ActivityImage{}, img.ID).Error, gorm.ErrRecordNotFound)
}

func TestDeleteParcelTypeForbiddenForNonOwner(t *testing.T) {
	db := testutil.SetupDB(t)
	r := testutil.Router()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	rd := seedRound(t, db, alice.ID, "Morning")
	pt := rounds.ParcelType{RoundID: rd.ID, Name: "Small", MaxWeight: 2, MaxLength: 45, Rate: 0.74}
	require.NoError(t, db.Create(&pt).Error)

	w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/parcel-types/%d", pt.ID), testutil.Token(t, bob.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&rounds.ParcelType{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
