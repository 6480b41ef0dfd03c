package movements

import (
	"fmt"
	"time"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type MovementsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *MovementsRepository {
	return &MovementsRepository{repository: r}
}

var movementColumns = []interface{}{
	"id", "device_id",
	"from_location_type", "from_location_id",
	"to_location_type", "to_location_id",
	"moved_at", "moved_by",
}

func (r *MovementsRepository) getMovementQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From("movement_history").
		Select(movementColumns...)
}

func (r *MovementsRepository) GetMovement(id int) (*models.Movement, error) {
	var flat models.FlatMovementRecord

	found, err := r.getMovementQuery().
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select movement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Movement not found")
	}

	movement := flat.TransformToMovement()
	return &movement, nil
}

// ListMovements returns the ledger newest-first.
func (r *MovementsRepository) ListMovements(filter models.MovementFilter) ([]models.Movement, error) {
	query := r.getMovementQuery().Order(goqu.I("moved_at").Desc(), goqu.I("id").Desc())

	if filter.DeviceID != nil {
		query = query.Where(goqu.Ex{"device_id": *filter.DeviceID})
	}

	var flatMovements []models.FlatMovementRecord
	err := repository.Paginate(query, filter.Offset, filter.Limit).Executor().ScanStructs(&flatMovements)
	if err != nil {
		return nil, fmt.Errorf("unable to select movements: %w", err)
	}

	movements := make([]models.Movement, 0, len(flatMovements))
	for _, flat := range flatMovements {
		movements = append(movements, flat.TransformToMovement())
	}

	return movements, nil
}

// RecordMove appends the ledger row and updates the device's custody in one
// transaction, so the newest movement's `to` always matches the device.
func (r *MovementsRepository) RecordMove(deviceID int, from models.Custody, to models.Custody, movedBy int) (*models.Movement, error) {
	var movementID int
	movedAt := time.Now().UTC()

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		insert := tx.Insert("movement_history").
			Rows(goqu.Record{
				"device_id":          deviceID,
				"from_location_type": string(from.Type),
				"from_location_id":   from.ID,
				"to_location_type":   string(to.Type),
				"to_location_id":     to.ID,
				"moved_at":           movedAt,
				"moved_by":           movedBy,
			}).
			Returning("id")

		if _, err := insert.Executor().ScanVal(&movementID); err != nil {
			return fmt.Errorf("unable to insert movement record: %w", err)
		}

		update := tx.Update("devices").
			Set(goqu.Record{
				"current_location_type": string(to.Type),
				"current_location_id":   to.ID,
				"updated_at":            movedAt,
			}).
			Where(goqu.Ex{"id": deviceID})

		if _, err := update.Executor().Exec(); err != nil {
			return fmt.Errorf("unable to update device location: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetMovement(movementID)
}
