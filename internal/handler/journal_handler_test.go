package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type fakeJournalSrv struct {
	saved   []dto.JournalEntryRequest
	saveErr error
	day     dto.JournalDayResponse
}

func (f *fakeJournalSrv) Save(_ context.Context, req dto.JournalEntryRequest) ([]models.ClassLog, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, req)
	return []models.ClassLog{{ID: "log-1"}}, nil
}

func (f *fakeJournalSrv) Day(_ context.Context, _ string) (dto.JournalDayResponse, error) {
	return f.day, nil
}

func (f *fakeJournalSrv) ScheduledHours(_ context.Context, date, courseID string) (dto.ScheduledHoursResponse, error) {
	return dto.ScheduledHoursResponse{Date: date, CourseID: courseID, Hours: 2}, nil
}

func (f *fakeJournalSrv) List(_ context.Context, _ models.ClassLogFilter) ([]models.ClassLog, error) {
	return nil, nil
}

func (f *fakeJournalSrv) Delete(_ context.Context, _ string) error { return nil }

func TestJournalHandlerSave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeJournalSrv{}
	h := NewJournalHandler(srv)

	body, _ := json.Marshal(dto.JournalEntryRequest{
		Date:             "2025-12-15",
		CourseID:         "course-1",
		UnitID:           "ut-1",
		TotalDuration:    1,
		HourDistribution: []models.SessionType{models.SessionTheory},
		Status:           models.AttendanceDelivered,
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, srv.saved, 1)
	assert.Equal(t, "course-1", srv.saved[0].CourseID)
}

func TestJournalHandlerSaveRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(&fakeJournalSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader([]byte(`{"date":"2025-12-15"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalHandlerSaveMapsDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(&fakeJournalSrv{saveErr: appErrors.ErrHourDistribution})

	body, _ := json.Marshal(dto.JournalEntryRequest{
		Date:             "2025-12-15",
		CourseID:         "course-1",
		UnitID:           "ut-1",
		TotalDuration:    2,
		HourDistribution: []models.SessionType{models.SessionTheory},
		Status:           models.AttendanceDelivered,
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_HOUR_DISTRIBUTION")
}

func TestJournalHandlerDayRequiresDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(&fakeJournalSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/journal/day", nil)

	h.Day(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalHandlerDaySuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(&fakeJournalSrv{day: dto.JournalDayResponse{Date: "2025-12-15", Weekday: 1}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/journal/day?date=2025-12-15", nil)

	h.Day(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"weekday":1`)
}
