package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type fakeCourseSrv struct {
	deleteID      string
	deleteConfirm bool
	deleteErr     error
}

func (f *fakeCourseSrv) List(_ context.Context) ([]models.Course, error) { return nil, nil }
func (f *fakeCourseSrv) Get(_ context.Context, _ string) (models.Course, error) {
	return models.Course{}, appErrors.ErrNotFound
}
func (f *fakeCourseSrv) Create(_ context.Context, _ dto.CourseRequest) (models.Course, error) {
	return models.Course{}, nil
}
func (f *fakeCourseSrv) Update(_ context.Context, _ string, _ dto.CourseRequest) (models.Course, error) {
	return models.Course{}, nil
}
func (f *fakeCourseSrv) Delete(_ context.Context, id string, confirm bool) error {
	f.deleteID = id
	f.deleteConfirm = confirm
	if !confirm {
		return appErrors.ErrConfirmationNeeded
	}
	return f.deleteErr
}

type fakeProgressSrv struct{}

func (f *fakeProgressSrv) ForCourse(_ context.Context, _ string) (dto.CourseProgressResponse, error) {
	return dto.CourseProgressResponse{}, nil
}

func TestCourseHandlerDeleteWithoutConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCourseSrv{}
	h := NewCourseHandler(srv, &fakeProgressSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/courses/course-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	h.Delete(c)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.False(t, srv.deleteConfirm)
}

func TestCourseHandlerDeleteConfirmed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCourseSrv{}
	h := NewCourseHandler(srv, &fakeProgressSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/courses/course-1?confirm=true", nil)
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "course-1", srv.deleteID)
	assert.True(t, srv.deleteConfirm)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCourseHandler(&fakeCourseSrv{}, &fakeProgressSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
