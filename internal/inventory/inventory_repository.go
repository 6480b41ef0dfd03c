package inventory

import (
	"fmt"
	"time"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type InventoryRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *InventoryRepository {
	return &InventoryRepository{repository: r}
}

type flatSessionRecord struct {
	ID          int        `db:"id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	Status      string     `db:"status"`
	CreatedBy   int        `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

func (f *flatSessionRecord) transformToSession() models.InventorySession {
	return models.InventorySession{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Status:      models.SessionStatus(f.Status),
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
		CompletedAt: f.CompletedAt,
	}
}

var sessionColumns = []interface{}{
	"id", "name", "description", "status", "created_by", "created_at", "completed_at",
}

// CreateSession writes the session, its device-type set and one unchecked
// record per snapshotted device in a single transaction.
func (r *InventoryRepository) CreateSession(req models.InventorySessionRequest, createdBy int, deviceIDs []int) (*models.InventorySession, error) {
	var sessionID int

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		insert := tx.Insert("inventory_sessions").
			Rows(goqu.Record{
				"name":        req.Name,
				"description": req.Description,
				"status":      string(models.SessionStatusActive),
				"created_by":  createdBy,
				"created_at":  time.Now().UTC(),
			}).
			Returning("id")

		if _, err := insert.Executor().ScanVal(&sessionID); err != nil {
			return fmt.Errorf("unable to insert inventory session: %w", err)
		}

		typeRows := make([]goqu.Record, 0, len(req.DeviceTypeIDs))
		for _, typeID := range req.DeviceTypeIDs {
			typeRows = append(typeRows, goqu.Record{
				"inventory_session_id": sessionID,
				"device_type_id":       typeID,
			})
		}
		if _, err := tx.Insert("inventory_session_device_types").Rows(typeRows).Executor().Exec(); err != nil {
			return fmt.Errorf("unable to insert session device types: %w", err)
		}

		if len(deviceIDs) == 0 {
			return nil
		}

		recordRows := make([]goqu.Record, 0, len(deviceIDs))
		for _, deviceID := range deviceIDs {
			recordRows = append(recordRows, goqu.Record{
				"inventory_session_id": sessionID,
				"device_id":            deviceID,
				"checked":              false,
			})
		}
		if _, err := tx.Insert("inventory_records").Rows(recordRows).Executor().Exec(); err != nil {
			return fmt.Errorf("unable to insert inventory records: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetSession(sessionID)
}

func (r *InventoryRepository) GetSession(id int) (*models.InventorySession, error) {
	var flat flatSessionRecord

	found, err := r.repository.GoquDBWrapper.
		From("inventory_sessions").
		Select(sessionColumns...).
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory session: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Inventory session not found")
	}

	session := flat.transformToSession()

	deviceTypes, err := r.sessionDeviceTypes(id)
	if err != nil {
		return nil, err
	}
	session.DeviceTypes = deviceTypes

	return &session, nil
}

func (r *InventoryRepository) sessionDeviceTypes(sessionID int) ([]models.DeviceType, error) {
	var deviceTypes []models.DeviceType

	query := r.repository.GoquDBWrapper.
		From("device_types").
		Select("device_types.id", "device_types.name", "device_types.code", "device_types.description").
		Join(
			goqu.T("inventory_session_device_types"),
			goqu.On(goqu.Ex{"inventory_session_device_types.device_type_id": goqu.I("device_types.id")}),
		).
		Where(goqu.Ex{"inventory_session_device_types.inventory_session_id": sessionID}).
		Order(goqu.I("device_types.id").Asc())

	if err := query.Executor().ScanStructs(&deviceTypes); err != nil {
		return nil, fmt.Errorf("unable to select session device types: %w", err)
	}

	return deviceTypes, nil
}

func (r *InventoryRepository) ListSessions(status *models.SessionStatus, offset, limit int) ([]models.InventorySession, error) {
	query := r.repository.GoquDBWrapper.
		From("inventory_sessions").
		Select(sessionColumns...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc())

	if status != nil {
		query = query.Where(goqu.Ex{"status": string(*status)})
	}

	var flatSessions []flatSessionRecord
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&flatSessions); err != nil {
		return nil, fmt.Errorf("unable to select inventory sessions: %w", err)
	}

	sessions := make([]models.InventorySession, 0, len(flatSessions))
	for _, flat := range flatSessions {
		session := flat.transformToSession()
		deviceTypes, err := r.sessionDeviceTypes(session.ID)
		if err != nil {
			return nil, err
		}
		session.DeviceTypes = deviceTypes
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *InventoryRepository) UpdateSession(id int, patch models.InventorySessionPatch, completedAt *time.Time) (*models.InventorySession, error) {
	record := goqu.Record{}
	if patch.Name != nil {
		record["name"] = *patch.Name
	}
	if patch.Description != nil {
		record["description"] = *patch.Description
	}
	if patch.Status != nil {
		record["status"] = string(*patch.Status)
	}
	if completedAt != nil {
		record["completed_at"] = *completedAt
	}

	if len(record) > 0 {
		query := r.repository.GoquDBWrapper.
			Update("inventory_sessions").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, fmt.Errorf("unable to update inventory session: %w", err)
		}
	}

	return r.GetSession(id)
}

var recordColumns = []interface{}{
	"id", "inventory_session_id", "device_id", "checked", "checked_at", "checked_by", "notes",
}

type flatInventoryRecord struct {
	ID        int        `db:"id"`
	SessionID int        `db:"inventory_session_id"`
	DeviceID  int        `db:"device_id"`
	Checked   bool       `db:"checked"`
	CheckedAt *time.Time `db:"checked_at"`
	CheckedBy *int       `db:"checked_by"`
	Notes     *string    `db:"notes"`
}

func (f *flatInventoryRecord) transformToRecord() models.InventoryRecord {
	return models.InventoryRecord{
		ID:        f.ID,
		SessionID: f.SessionID,
		DeviceID:  f.DeviceID,
		Checked:   f.Checked,
		CheckedAt: f.CheckedAt,
		CheckedBy: f.CheckedBy,
		Notes:     f.Notes,
	}
}

func (r *InventoryRepository) GetRecord(id int) (*models.InventoryRecord, error) {
	var flat flatInventoryRecord

	found, err := r.repository.GoquDBWrapper.
		From("inventory_records").
		Select(recordColumns...).
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory record: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Inventory record not found")
	}

	record := flat.transformToRecord()
	return &record, nil
}

// FindRecordByDevice returns the session's record for the device, or nil
// when the device was not part of the snapshot.
func (r *InventoryRepository) FindRecordByDevice(sessionID, deviceID int) (*models.InventoryRecord, error) {
	var flat flatInventoryRecord

	found, err := r.repository.GoquDBWrapper.
		From("inventory_records").
		Select(recordColumns...).
		Where(goqu.Ex{"inventory_session_id": sessionID, "device_id": deviceID}).
		Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory record: %w", err)
	}
	if !found {
		return nil, nil
	}

	record := flat.transformToRecord()
	return &record, nil
}

func (r *InventoryRepository) ListRecords(sessionID int, checked *bool, offset, limit int) ([]models.InventoryRecord, error) {
	query := r.repository.GoquDBWrapper.
		From("inventory_records").
		Select(recordColumns...).
		Where(goqu.Ex{"inventory_session_id": sessionID}).
		Order(goqu.I("id").Asc())

	if checked != nil {
		query = query.Where(goqu.Ex{"checked": *checked})
	}

	var flatRecords []flatInventoryRecord
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&flatRecords); err != nil {
		return nil, fmt.Errorf("unable to select inventory records: %w", err)
	}

	records := make([]models.InventoryRecord, 0, len(flatRecords))
	for _, flat := range flatRecords {
		records = append(records, flat.transformToRecord())
	}

	return records, nil
}

func (r *InventoryRepository) InsertRecord(record models.InventoryRecord) (*models.InventoryRecord, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("inventory_records").
		Rows(goqu.Record{
			"inventory_session_id": record.SessionID,
			"device_id":            record.DeviceID,
			"checked":              record.Checked,
			"checked_at":           record.CheckedAt,
			"checked_by":           record.CheckedBy,
			"notes":                record.Notes,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Device is already recorded in this session")
	}

	return r.GetRecord(id)
}

func (r *InventoryRepository) UpdateRecord(record models.InventoryRecord) (*models.InventoryRecord, error) {
	query := r.repository.GoquDBWrapper.
		Update("inventory_records").
		Set(goqu.Record{
			"checked":    record.Checked,
			"checked_at": record.CheckedAt,
			"checked_by": record.CheckedBy,
			"notes":      record.Notes,
		}).
		Where(goqu.Ex{"id": record.ID})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, fmt.Errorf("unable to update inventory record: %w", err)
	}

	return r.GetRecord(record.ID)
}

// CountRecords returns the session's total and checked record counts.
func (r *InventoryRepository) CountRecords(sessionID int) (total int, checked int, err error) {
	query := r.repository.GoquDBWrapper.
		From("inventory_records").
		Select(
			goqu.COUNT("*").As("total"),
			goqu.COUNT(goqu.Case().When(goqu.Ex{"checked": true}, 1)).As("checked"),
		).
		Where(goqu.Ex{"inventory_session_id": sessionID})

	var counts struct {
		Total   int `db:"total"`
		Checked int `db:"checked"`
	}
	if _, err = query.Executor().ScanStruct(&counts); err != nil {
		return 0, 0, fmt.Errorf("unable to count inventory records: %w", err)
	}

	return counts.Total, counts.Checked, nil
}

// SessionHasDeviceType reports whether the device type belongs to the
// session's snapshot set.
func (r *InventoryRepository) SessionHasDeviceType(sessionID, deviceTypeID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("inventory_session_device_types").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{
			"inventory_session_id": sessionID,
			"device_type_id":       deviceTypeID,
		})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check session device type: %w", err)
	}

	return count > 0, nil
}
