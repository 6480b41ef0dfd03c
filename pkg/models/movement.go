package models

import "time"

// Movement is one append-only custody transfer. Rows are never mutated; the
// `to` custody of a device's newest movement always equals the device's
// current custody because both are written in one transaction.
type Movement struct {
	ID       int       `json:"id"`
	DeviceID int       `json:"device_id"`
	From     *Custody  `json:"from_location"`
	To       Custody   `json:"to_location"`
	MovedAt  time.Time `json:"moved_at"`
	MovedBy  int       `json:"moved_by"`
}

type FlatMovementRecord struct {
	ID               int       `db:"id"`
	DeviceID         int       `db:"device_id"`
	FromLocationType *string   `db:"from_location_type"`
	FromLocationID   *int      `db:"from_location_id"`
	ToLocationType   string    `db:"to_location_type"`
	ToLocationID     int       `db:"to_location_id"`
	MovedAt          time.Time `db:"moved_at"`
	MovedBy          int       `db:"moved_by"`
}

func (f *FlatMovementRecord) TransformToMovement() Movement {
	m := Movement{
		ID:       f.ID,
		DeviceID: f.DeviceID,
		To: Custody{
			Type: LocationType(f.ToLocationType),
			ID:   f.ToLocationID,
		},
		MovedAt: f.MovedAt,
		MovedBy: f.MovedBy,
	}
	if f.FromLocationType != nil && f.FromLocationID != nil {
		m.From = &Custody{
			Type: LocationType(*f.FromLocationType),
			ID:   *f.FromLocationID,
		}
	}
	return m
}

type MovementRequest struct {
	DeviceID int     `json:"device_id" binding:"required"`
	To       Custody `json:"to_location" binding:"required"`
}

type MovementFilter struct {
	DeviceID *int
	Offset   int
	Limit    int
}
