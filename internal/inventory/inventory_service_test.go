package inventory

import (
	"testing"
	"time"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(req models.InventorySessionRequest, createdBy int, deviceIDs []int) (*models.InventorySession, error) {
	args := m.Called(req, createdBy, deviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventorySession), args.Error(1)
}

func (m *MockSessionRepository) GetSession(id int) (*models.InventorySession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventorySession), args.Error(1)
}

func (m *MockSessionRepository) ListSessions(status *models.SessionStatus, offset, limit int) ([]models.InventorySession, error) {
	args := m.Called(status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventorySession), args.Error(1)
}

func (m *MockSessionRepository) UpdateSession(id int, patch models.InventorySessionPatch, completedAt *time.Time) (*models.InventorySession, error) {
	args := m.Called(id, patch, completedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventorySession), args.Error(1)
}

func (m *MockSessionRepository) GetRecord(id int) (*models.InventoryRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockSessionRepository) FindRecordByDevice(sessionID, deviceID int) (*models.InventoryRecord, error) {
	args := m.Called(sessionID, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockSessionRepository) ListRecords(sessionID int, checked *bool, offset, limit int) ([]models.InventoryRecord, error) {
	args := m.Called(sessionID, checked, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryRecord), args.Error(1)
}

func (m *MockSessionRepository) InsertRecord(record models.InventoryRecord) (*models.InventoryRecord, error) {
	args := m.Called(record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockSessionRepository) UpdateRecord(record models.InventoryRecord) (*models.InventoryRecord, error) {
	args := m.Called(record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockSessionRepository) CountRecords(sessionID int) (int, int, error) {
	args := m.Called(sessionID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockSessionRepository) SessionHasDeviceType(sessionID, deviceTypeID int) (bool, error) {
	args := m.Called(sessionID, deviceTypeID)
	return args.Bool(0), args.Error(1)
}

type MockDeviceSnapshot struct {
	mock.Mock
}

func (m *MockDeviceSnapshot) GetDevice(id int) (*models.Device, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceSnapshot) ListDeviceIDsByTypes(deviceTypeIDs []int) ([]int, error) {
	args := m.Called(deviceTypeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type MockDeviceTypeCatalog struct {
	mock.Mock
}

func (m *MockDeviceTypeCatalog) CountDeviceTypes(ids []int) (int, error) {
	args := m.Called(ids)
	return args.Int(0), args.Error(1)
}

func newServiceWithMocks() (*InventoryService, *MockSessionRepository, *MockDeviceSnapshot, *MockDeviceTypeCatalog) {
	repo := new(MockSessionRepository)
	devices := new(MockDeviceSnapshot)
	deviceTypes := new(MockDeviceTypeCatalog)
	return NewService(repo, devices, deviceTypes), repo, devices, deviceTypes
}

func activeSession(id int) *models.InventorySession {
	return &models.InventorySession{ID: id, Name: "Q3 audit", Status: models.SessionStatusActive}
}

func TestCreateSessionSnapshotsDevices(t *testing.T) {
	service, repo, devices, deviceTypes := newServiceWithMocks()

	req := models.InventorySessionRequest{Name: "Q3 audit", DeviceTypeIDs: []int{1, 2}}

	deviceTypes.On("CountDeviceTypes", []int{1, 2}).Return(2, nil)
	devices.On("ListDeviceIDsByTypes", []int{1, 2}).Return([]int{10, 11, 12}, nil)
	repo.On("CreateSession", req, 42, []int{10, 11, 12}).Return(activeSession(1), nil)

	session, err := service.CreateSession(req, 42)

	assert.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, session.Status)
	repo.AssertExpectations(t)
}

func TestCreateSessionUnknownDeviceType(t *testing.T) {
	service, repo, _, deviceTypes := newServiceWithMocks()

	req := models.InventorySessionRequest{Name: "Q3 audit", DeviceTypeIDs: []int{1, 99}}

	deviceTypes.On("CountDeviceTypes", []int{1, 99}).Return(1, nil)

	_, err := service.CreateSession(req, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
	assert.EqualError(t, err, "One or more device types not found")
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSessionCompletedStampsTimestamp(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(activeSession(1), nil)

	completed := models.SessionStatusCompleted
	patch := models.InventorySessionPatch{Status: &completed}

	repo.On("UpdateSession", 1, patch, mock.MatchedBy(func(ts *time.Time) bool {
		return ts != nil
	})).Return(&models.InventorySession{ID: 1, Status: completed}, nil)

	session, err := service.UpdateSession(1, patch)

	assert.NoError(t, err)
	assert.Equal(t, completed, session.Status)
	repo.AssertExpectations(t)
}

func TestUpdateSessionClosedStatusIsFinal(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(&models.InventorySession{ID: 1, Status: models.SessionStatusCompleted}, nil)

	active := models.SessionStatusActive
	_, err := service.UpdateSession(1, models.InventorySessionPatch{Status: &active})

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	repo.AssertNotCalled(t, "UpdateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertRecordRejectsForeignDeviceType(t *testing.T) {
	service, repo, devices, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(activeSession(1), nil)
	devices.On("GetDevice", 10).Return(&models.Device{ID: 10, DeviceTypeID: 7}, nil)
	repo.On("SessionHasDeviceType", 1, 7).Return(false, nil)

	_, err := service.UpsertRecord(1, models.InventoryRecordRequest{DeviceID: 10, Checked: true}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Device type does not match session device types")
}

func TestUpsertRecordInactiveSession(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(&models.InventorySession{ID: 1, Status: models.SessionStatusCancelled}, nil)

	_, err := service.UpsertRecord(1, models.InventoryRecordRequest{DeviceID: 10}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Cannot modify records in a non-active session")
}

func TestUpsertRecordUpdatesExisting(t *testing.T) {
	service, repo, devices, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(activeSession(1), nil)
	devices.On("GetDevice", 10).Return(&models.Device{ID: 10, DeviceTypeID: 2}, nil)
	repo.On("SessionHasDeviceType", 1, 2).Return(true, nil)
	repo.On("FindRecordByDevice", 1, 10).Return(&models.InventoryRecord{ID: 5, SessionID: 1, DeviceID: 10}, nil)
	repo.On("UpdateRecord", mock.MatchedBy(func(record models.InventoryRecord) bool {
		return record.ID == 5 && record.Checked && record.CheckedAt != nil && record.CheckedBy != nil && *record.CheckedBy == 42
	})).Return(&models.InventoryRecord{ID: 5, SessionID: 1, DeviceID: 10, Checked: true}, nil)

	record, err := service.UpsertRecord(1, models.InventoryRecordRequest{DeviceID: 10, Checked: true}, 42)

	assert.NoError(t, err)
	assert.True(t, record.Checked)
	repo.AssertNotCalled(t, "InsertRecord", mock.Anything)
}

func TestCheckRecordAlreadyChecked(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetRecord", 5).Return(&models.InventoryRecord{ID: 5, SessionID: 1, Checked: true}, nil)
	repo.On("GetSession", 1).Return(activeSession(1), nil)

	_, err := service.CheckRecord(5, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Device already checked in this session")
}

func TestUncheckRecordClearsStamps(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	checkedAt := time.Now().UTC()
	checkedBy := 42
	repo.On("GetRecord", 5).Return(&models.InventoryRecord{
		ID: 5, SessionID: 1, Checked: true, CheckedAt: &checkedAt, CheckedBy: &checkedBy,
	}, nil)
	repo.On("GetSession", 1).Return(activeSession(1), nil)
	repo.On("UpdateRecord", mock.MatchedBy(func(record models.InventoryRecord) bool {
		return record.ID == 5 && !record.Checked && record.CheckedAt == nil && record.CheckedBy == nil
	})).Return(&models.InventoryRecord{ID: 5, SessionID: 1}, nil)

	record, err := service.UncheckRecord(5, 42)

	assert.NoError(t, err)
	assert.False(t, record.Checked)
	repo.AssertExpectations(t)
}

func TestUncheckRecordNotChecked(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetRecord", 5).Return(&models.InventoryRecord{ID: 5, SessionID: 1, Checked: false}, nil)
	repo.On("GetSession", 1).Return(activeSession(1), nil)

	_, err := service.UncheckRecord(5, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Device is not checked in this session")
}

func TestStatisticsRounding(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(activeSession(1), nil)
	repo.On("CountRecords", 1).Return(3, 1, nil)

	statistics, err := service.Statistics(1)

	assert.NoError(t, err)
	assert.Equal(t, 3, statistics.TotalDevices)
	assert.Equal(t, 1, statistics.CheckedDevices)
	assert.Equal(t, 2, statistics.RemainingDevices)
	assert.Equal(t, 33.33, statistics.ProgressPercent)
}

func TestStatisticsEmptySession(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetSession", 1).Return(activeSession(1), nil)
	repo.On("CountRecords", 1).Return(0, 0, nil)

	statistics, err := service.Statistics(1)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, statistics.ProgressPercent)
}
