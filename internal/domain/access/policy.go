// Package access holds the ownership rules every mutation is checked
// against: the acting principal must equal the resource's recorded owner.
// Parcel types inherit ownership from their round.
package access

import (
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/rounds"
)

func CanManageRound(userID uint, r rounds.Round) bool {
	return r.UserID == userID
}

func CanManageParcelType(userID uint, pt rounds.ParcelType) bool {
	return pt.Round != nil && pt.Round.UserID == userID
}

func CanManageActivity(userID uint, a activities.Activity) bool {
	return a.UserID == userID
}
