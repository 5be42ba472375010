package handlers

import (
	"context"
	"net/http"
	"time"

	"aquascape/internal/command"
	"aquascape/internal/models"
	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int64
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int64
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int64, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(_ context.Context, token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockAquariums struct {
	aquarium models.Aquarium
	list     []models.Aquarium
	err      error

	lastUserID int64
	lastID     int64
	lastInput  service.AquariumInput
	deleted    int
}

func (m *mockAquariums) Create(_ context.Context, userID int64, in service.AquariumInput) (models.Aquarium, error) {
	m.lastUserID, m.lastInput = userID, in
	return m.aquarium, m.err
}
func (m *mockAquariums) Get(_ context.Context, userID, id int64) (models.Aquarium, error) {
	m.lastUserID, m.lastID = userID, id
	return m.aquarium, m.err
}
func (m *mockAquariums) List(_ context.Context, userID int64) ([]models.Aquarium, error) {
	m.lastUserID = userID
	return m.list, m.err
}
func (m *mockAquariums) Update(_ context.Context, userID, id int64, in service.AquariumInput) (models.Aquarium, error) {
	m.lastUserID, m.lastID, m.lastInput = userID, id, in
	return m.aquarium, m.err
}
func (m *mockAquariums) Delete(_ context.Context, userID, id int64) error {
	m.lastUserID, m.lastID = userID, id
	m.deleted++
	return m.err
}

type mockSensors struct {
	reading    models.SensorReading
	list       []models.SensorReading
	err        error
	lastFilter service.HistoryFilter
	lastInput  service.SensorInput
}

func (m *mockSensors) Record(_ context.Context, _ int64, in service.SensorInput) (models.SensorReading, error) {
	m.lastInput = in
	return m.reading, m.err
}
func (m *mockSensors) List(_ context.Context, _ int64, f service.HistoryFilter) ([]models.SensorReading, error) {
	m.lastFilter = f
	return m.list, m.err
}

type mockFeedings struct {
	log        models.FeedingLog
	list       []models.FeedingLog
	err        error
	lastFilter service.HistoryFilter
	lastInput  service.FeedingInput
}

func (m *mockFeedings) Record(_ context.Context, _ int64, in service.FeedingInput) (models.FeedingLog, error) {
	m.lastInput = in
	return m.log, m.err
}
func (m *mockFeedings) List(_ context.Context, _ int64, f service.HistoryFilter) ([]models.FeedingLog, error) {
	m.lastFilter = f
	return m.list, m.err
}

type mockSchedules struct {
	schedule  models.Schedule
	list      []models.Schedule
	err       error
	lastID    int64
	lastInput service.ScheduleInput
}

func (m *mockSchedules) Create(_ context.Context, _ int64, in service.ScheduleInput) (models.Schedule, error) {
	m.lastInput = in
	return m.schedule, m.err
}
func (m *mockSchedules) Get(_ context.Context, _, id int64) (models.Schedule, error) {
	m.lastID = id
	return m.schedule, m.err
}
func (m *mockSchedules) List(_ context.Context, _, aquariumID int64) ([]models.Schedule, error) {
	m.lastID = aquariumID
	return m.list, m.err
}
func (m *mockSchedules) Update(_ context.Context, _, id int64, in service.ScheduleInput) (models.Schedule, error) {
	m.lastID, m.lastInput = id, in
	return m.schedule, m.err
}
func (m *mockSchedules) Delete(_ context.Context, _, id int64) error {
	m.lastID = id
	return m.err
}

type mockAlerts struct {
	alert      models.Alert
	list       []models.Alert
	err        error
	listErr    error
	listErrAt  int // listErr is returned once listCalls exceeds this
	listCalls  int
	lastFilter service.AlertFilter
	lastID     int64
	lastVolume decimal.NullDecimal
	lastUpdate command.UpdateSettings
}

func (m *mockAlerts) Create(_ context.Context, _ int64, in service.AlertInput) (models.Alert, error) {
	return m.alert, m.err
}
func (m *mockAlerts) List(_ context.Context, _ int64, f service.AlertFilter) ([]models.Alert, error) {
	m.listCalls++
	m.lastFilter = f
	if m.listErr != nil && m.listCalls > m.listErrAt {
		return nil, m.listErr
	}
	return m.list, m.err
}
func (m *mockAlerts) Delete(_ context.Context, _, id int64) error {
	m.lastID = id
	return m.err
}
func (m *mockAlerts) Resolve(_ context.Context, _, id int64) (models.Alert, error) {
	m.lastID = id
	return m.alert, m.err
}
func (m *mockAlerts) FeedNow(_ context.Context, _, aquariumID int64, volume decimal.NullDecimal) (models.Alert, error) {
	m.lastID, m.lastVolume = aquariumID, volume
	return m.alert, m.err
}
func (m *mockAlerts) UpdateSettings(_ context.Context, _, aquariumID int64, u command.UpdateSettings) (models.Alert, error) {
	m.lastID, m.lastUpdate = aquariumID, u
	return m.alert, m.err
}

// ---- Shared Test Helpers ----

const testToken = "good-token"

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if s.Authorization == nil {
		s.Authorization = &mockAuth{parseID: 1}
	}
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

var fixedTS = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
