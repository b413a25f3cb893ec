package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/controllers"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/models/dto/enums"
	"github.com/yigit/studentrecords/internal/app/repositories/memory"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/auth"
)

type testAPI struct {
	router    *gin.Engine
	registrar string
	viewer    string
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithReady(t, nil)
}

func newTestAPIWithReady(t *testing.T, ready func(context.Context) error) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	svc := services.NewServices(memory.NewRepositories(), services.Rules{}, zerolog.Nop())
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "studentrecords"})

	router := gin.New()
	SetupRouter(router, Controllers{
		Department: controllers.NewDepartmentController(svc.DepartmentService, svc.LectureService),
		Lecture:    controllers.NewLectureController(svc.LectureService),
		Student:    controllers.NewStudentController(svc.StudentService),
		Ready:      ready,
	}, middleware.NewAuthMiddleware(jwtService))

	registrar, _, err := jwtService.GenerateToken("office", enums.RoleRegistrar)
	require.NoError(t, err)
	viewer, _, err := jwtService.GenerateToken("guest", enums.RoleViewer)
	require.NoError(t, err)

	return &testAPI{router: router, registrar: registrar, viewer: viewer}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (a *testAPI) seed(t *testing.T) {
	t.Helper()
	rec, _ := a.do(t, http.MethodPost, "/api/v1/departments", a.registrar, gin.H{"code": "CS1234", "name": "ComputerScience"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = a.do(t, http.MethodPost, "/api/v1/lectures", a.registrar,
		gin.H{"name": "Algorithms", "time": "10:00-11:30", "weekday": "Monday", "departments": []string{"CS1234"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = a.do(t, http.MethodPost, "/api/v1/students", a.registrar, gin.H{
		"number": "12345678", "firstName": "John", "lastName": "Smith",
		"email": "john.smith@example.com", "departmentCode": "CS1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec, env := api.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	down := newTestAPIWithReady(t, func(context.Context) error { return errors.New("connection refused") })
	rec, env = down.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, dto.ErrorCodeUnavailable, env.Error.Code)
}

func TestWriteRoutesRequireRegistrar(t *testing.T) {
	api := newTestAPI(t)
	body := gin.H{"code": "CS1234", "name": "ComputerScience"}

	rec, env := api.do(t, http.MethodPost, "/api/v1/departments", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)

	rec, env = api.do(t, http.MethodPost, "/api/v1/departments", "not-a-token", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = api.do(t, http.MethodPost, "/api/v1/departments", api.viewer, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, env.Error.Code)
}

func TestDepartmentRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/departments", api.registrar, gin.H{"code": "CS1234", "name": "Duplicate"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, env.Error.Code)

	rec, env = api.do(t, http.MethodPost, "/api/v1/departments", api.registrar, gin.H{"code": "CS12", "name": "Short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "code", env.Error.Field)

	rec, env = api.do(t, http.MethodGet, "/api/v1/departments/CS1234", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var department dto.DepartmentResponse
	require.NoError(t, json.Unmarshal(env.Data, &department))
	assert.Equal(t, []string{"Algorithms"}, department.Lectures)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/departments/ENG999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(t, http.MethodGet, "/api/v1/departments/CS1234/lectures", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lectures []dto.LectureResponse
	require.NoError(t, json.Unmarshal(env.Data, &lectures))
	require.Len(t, lectures, 1)
	assert.Equal(t, "Monday", *lectures[0].Weekday)
}

func TestLectureRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/lectures", api.registrar,
		gin.H{"name": "DataStructures", "time": "11:00-12:00", "weekday": "Monday", "departments": []string{"CS1234"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeLectureOverlap, env.Error.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/v1/lectures", api.registrar,
		gin.H{"name": "DataStructures", "time": "11:00-12:00", "weekday": "Tuesday"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = api.do(t, http.MethodPut, "/api/v1/departments/CS1234/lectures/DataStructures", api.registrar, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(t, http.MethodPut, "/api/v1/departments/CS1234/lectures/DataStructures", api.registrar, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)

	rec, env = api.do(t, http.MethodPost, "/api/v1/lectures", api.registrar, gin.H{"name": "Compilers", "time": "25:00-26:00"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "time", env.Error.Field)

	rec, env = api.do(t, http.MethodGet, "/api/v1/lectures?department=CS1234", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lectures []dto.LectureResponse
	require.NoError(t, json.Unmarshal(env.Data, &lectures))
	assert.Len(t, lectures, 2)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/lectures/Compilers", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/students", api.registrar, gin.H{
		"number": "87654321", "firstName": "Jo1n", "lastName": "Smith",
		"email": "@example.com", "departmentCode": "CS1234",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	details, ok := env.Error.Details.([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)

	rec, _ = api.do(t, http.MethodPost, "/api/v1/students", api.registrar, gin.H{
		"number": "12345678", "firstName": "Jane", "lastName": "Doe",
		"email": "jane.doe@example.com", "departmentCode": "CS1234",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = api.do(t, http.MethodPut, "/api/v1/students/12345678/lectures/Algorithms", api.registrar, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var student dto.StudentResponse
	require.NoError(t, json.Unmarshal(env.Data, &student))
	assert.Equal(t, []string{"Algorithms"}, student.Lectures)

	rec, _ = api.do(t, http.MethodPut, "/api/v1/students/12345678/lectures/Algorithms", api.registrar, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(t, http.MethodPut, "/api/v1/students/12345678/department", api.registrar, gin.H{"departmentCode": "ENG999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(t, http.MethodGet, "/api/v1/students?department=CS1234&page=1&size=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.StudentListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Students, 1)
	assert.EqualValues(t, 1, list.Pagination.TotalItems)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/students?size=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/students/99999999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimetableRoute(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	rec, _ := api.do(t, http.MethodGet, "/api/v1/departments/CS1234/timetable.ics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "SUMMARY:Algorithms")
	assert.Contains(t, rec.Body.String(), "RRULE:FREQ=WEEKLY;BYDAY=MO")

	rec, _ = api.do(t, http.MethodGet, "/api/v1/departments/CS1234/timetable.ics?week=2026-10-14", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DTSTART:20261012T100000")

	rec, env := api.do(t, http.MethodGet, "/api/v1/departments/CS1234/timetable.ics?week=next", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, env.Error.Code)
}
