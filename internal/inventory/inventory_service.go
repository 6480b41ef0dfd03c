package inventory

import (
	"math"
	"time"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"
)

type SessionRepository interface {
	CreateSession(req models.InventorySessionRequest, createdBy int, deviceIDs []int) (*models.InventorySession, error)
	GetSession(id int) (*models.InventorySession, error)
	ListSessions(status *models.SessionStatus, offset, limit int) ([]models.InventorySession, error)
	UpdateSession(id int, patch models.InventorySessionPatch, completedAt *time.Time) (*models.InventorySession, error)
	GetRecord(id int) (*models.InventoryRecord, error)
	FindRecordByDevice(sessionID, deviceID int) (*models.InventoryRecord, error)
	ListRecords(sessionID int, checked *bool, offset, limit int) ([]models.InventoryRecord, error)
	InsertRecord(record models.InventoryRecord) (*models.InventoryRecord, error)
	UpdateRecord(record models.InventoryRecord) (*models.InventoryRecord, error)
	CountRecords(sessionID int) (total int, checked int, err error)
	SessionHasDeviceType(sessionID, deviceTypeID int) (bool, error)
}

// DeviceSnapshot provides the device population a new session freezes.
type DeviceSnapshot interface {
	GetDevice(id int) (*models.Device, error)
	ListDeviceIDsByTypes(deviceTypeIDs []int) ([]int, error)
}

type DeviceTypeCatalog interface {
	CountDeviceTypes(ids []int) (int, error)
}

type InventoryService struct {
	repo        SessionRepository
	devices     DeviceSnapshot
	deviceTypes DeviceTypeCatalog
}

func NewService(repo SessionRepository, devices DeviceSnapshot, deviceTypes DeviceTypeCatalog) *InventoryService {
	return &InventoryService{repo: repo, devices: devices, deviceTypes: deviceTypes}
}

// CreateSession freezes the device population for the requested types and
// opens the session with every record unchecked.
func (s *InventoryService) CreateSession(req models.InventorySessionRequest, createdBy int) (*models.InventorySession, error) {
	count, err := s.deviceTypes.CountDeviceTypes(req.DeviceTypeIDs)
	if err != nil {
		return nil, err
	}
	if count != len(req.DeviceTypeIDs) {
		return nil, custom_error.NewNotFound("One or more device types not found")
	}

	deviceIDs, err := s.devices.ListDeviceIDsByTypes(req.DeviceTypeIDs)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateSession(req, createdBy, deviceIDs)
}

func (s *InventoryService) GetSession(id int) (*models.InventorySession, error) {
	return s.repo.GetSession(id)
}

func (s *InventoryService) ListSessions(status *models.SessionStatus, offset, limit int) ([]models.InventorySession, error) {
	if status != nil && !status.IsValid() {
		return nil, custom_error.NewInvalidOperation("Session status %s is not valid", *status)
	}
	return s.repo.ListSessions(status, offset, limit)
}

// UpdateSession renames or closes a session. Status may only move away from
// active; the completed transition stamps completed_at.
func (s *InventoryService) UpdateSession(id int, patch models.InventorySessionPatch) (*models.InventorySession, error) {
	session, err := s.repo.GetSession(id)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if patch.Status != nil && *patch.Status != session.Status {
		if !patch.Status.IsValid() {
			return nil, custom_error.NewInvalidOperation("Session status %s is not valid", *patch.Status)
		}
		if session.Status != models.SessionStatusActive {
			return nil, custom_error.NewInvalidOperation("Cannot change status of a %s session", session.Status)
		}
		if *patch.Status == models.SessionStatusCompleted {
			now := time.Now().UTC()
			completedAt = &now
		}
	}

	return s.repo.UpdateSession(id, patch, completedAt)
}

// SessionDevices lists the session's snapshot records, optionally narrowed
// to checked or unchecked ones.
func (s *InventoryService) SessionDevices(sessionID int, checked *bool, offset, limit int) ([]models.InventoryRecord, error) {
	if _, err := s.repo.GetSession(sessionID); err != nil {
		return nil, err
	}

	return s.repo.ListRecords(sessionID, checked, offset, limit)
}

func (s *InventoryService) Statistics(sessionID int) (*models.InventoryStatistics, error) {
	if _, err := s.repo.GetSession(sessionID); err != nil {
		return nil, err
	}

	total, checked, err := s.repo.CountRecords(sessionID)
	if err != nil {
		return nil, err
	}

	progress := 0.0
	if total > 0 {
		progress = math.Round(float64(checked)/float64(total)*100*100) / 100
	}

	return &models.InventoryStatistics{
		TotalDevices:     total,
		CheckedDevices:   checked,
		RemainingDevices: total - checked,
		ProgressPercent:  progress,
	}, nil
}

// UpsertRecord writes the check state for a device inside a session,
// creating the record if the device joined the registry after the snapshot
// but matches one of the session's device types.
func (s *InventoryService) UpsertRecord(sessionID int, req models.InventoryRecordRequest, userID int) (*models.InventoryRecord, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	device, err := s.devices.GetDevice(req.DeviceID)
	if err != nil {
		return nil, err
	}

	inSession, err := s.repo.SessionHasDeviceType(session.ID, device.DeviceTypeID)
	if err != nil {
		return nil, err
	}
	if !inSession {
		return nil, custom_error.NewInvalidOperation("Device type does not match session device types")
	}

	record := models.InventoryRecord{
		SessionID: sessionID,
		DeviceID:  req.DeviceID,
		Checked:   req.Checked,
		Notes:     req.Notes,
	}
	if req.Checked {
		now := time.Now().UTC()
		record.CheckedAt = &now
		record.CheckedBy = &userID
	}

	existing, err := s.repo.FindRecordByDevice(sessionID, req.DeviceID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.repo.InsertRecord(record)
	}

	record.ID = existing.ID
	return s.repo.UpdateRecord(record)
}

// UpdateRecord patches the check state or notes of an existing record.
func (s *InventoryService) UpdateRecord(sessionID, recordID int, patch models.InventoryRecordPatch, userID int) (*models.InventoryRecord, error) {
	if _, err := s.activeSession(sessionID); err != nil {
		return nil, err
	}

	record, err := s.repo.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	if record.SessionID != sessionID {
		return nil, custom_error.NewNotFound("Inventory record not found")
	}

	if patch.Notes != nil {
		record.Notes = patch.Notes
	}
	if patch.Checked != nil && *patch.Checked != record.Checked {
		applyCheckState(record, *patch.Checked, userID)
	}

	return s.repo.UpdateRecord(*record)
}

// CheckRecord marks a record as verified by the calling user.
func (s *InventoryService) CheckRecord(recordID, userID int) (*models.InventoryRecord, error) {
	record, err := s.repo.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeSession(record.SessionID); err != nil {
		return nil, err
	}
	if record.Checked {
		return nil, custom_error.NewInvalidOperation("Device already checked in this session")
	}

	applyCheckState(record, true, userID)
	return s.repo.UpdateRecord(*record)
}

// UncheckRecord reverts a verification.
func (s *InventoryService) UncheckRecord(recordID, userID int) (*models.InventoryRecord, error) {
	record, err := s.repo.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeSession(record.SessionID); err != nil {
		return nil, err
	}
	if !record.Checked {
		return nil, custom_error.NewInvalidOperation("Device is not checked in this session")
	}

	applyCheckState(record, false, userID)
	return s.repo.UpdateRecord(*record)
}

func (s *InventoryService) activeSession(sessionID int) (*models.InventorySession, error) {
	session, err := s.repo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusActive {
		return nil, custom_error.NewInvalidOperation("Cannot modify records in a non-active session")
	}
	return session, nil
}

// applyCheckState keeps the stamp invariant: checked records carry both
// checked_at and checked_by, unchecked records carry neither.
func applyCheckState(record *models.InventoryRecord, checked bool, userID int) {
	record.Checked = checked
	if checked {
		now := time.Now().UTC()
		record.CheckedAt = &now
		record.CheckedBy = &userID
	} else {
		record.CheckedAt = nil
		record.CheckedBy = nil
	}
}
