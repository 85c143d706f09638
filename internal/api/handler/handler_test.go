package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/diyajojo/studyGPT/internal/dto"
	"github.com/diyajojo/studyGPT/internal/generator"
	"github.com/diyajojo/studyGPT/internal/planner"
	"github.com/diyajojo/studyGPT/internal/service"
	"github.com/diyajojo/studyGPT/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 测试辅助 ──

// setAuth 模拟 JWTAuth 中间件注入的上下文
func setAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", "test@example.com")
		c.Set("jti", "test-jti")
		c.Set("token_expires_at", time.Now().Add(time.Hour))
		c.Next()
	}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("序列化请求体失败: %v", err)
	}
	return bytes.NewReader(data)
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v (body=%s)", err, w.Body.String())
	}
	return resp
}

// ── Mock 服务 ──

type mockAuthService struct {
	registerResult *dto.TokenResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	logoutErr      error
	logoutJTI      string
	meResult       *dto.UserDetailResponse
	meErr          error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return m.registerResult, m.registerErr
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}

func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}

func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}

type mockSubjectService struct {
	createResult *dto.SubjectResponse
	createErr    error
	getResult    *dto.SubjectDetailResponse
	getErr       error
	listResult   *dto.ListResponse[dto.SubjectResponse]
	listErr      error
	updateResult *dto.SubjectResponse
	updateErr    error
	deleteErr    error
}

func (m *mockSubjectService) Create(_ context.Context, _ string, _ *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	return m.createResult, m.createErr
}

func (m *mockSubjectService) Get(_ context.Context, _, _ string) (*dto.SubjectDetailResponse, error) {
	return m.getResult, m.getErr
}

func (m *mockSubjectService) List(_ context.Context, _ string, _ *dto.PaginationRequest) (*dto.ListResponse[dto.SubjectResponse], error) {
	return m.listResult, m.listErr
}

func (m *mockSubjectService) Update(_ context.Context, _, _ string, _ *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	return m.updateResult, m.updateErr
}

func (m *mockSubjectService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

type mockPlanService struct {
	generateResult *dto.PlanResponse
	generateErr    error
	keepResult     *dto.PlanResponse
	keepErr        error
	getResult      *dto.PlanResponse
	getErr         error
	deleteErr      error
	statusErr      error
	lastStatus     string
}

func (m *mockPlanService) Generate(_ context.Context, _, _ string) (*dto.PlanResponse, error) {
	return m.generateResult, m.generateErr
}

func (m *mockPlanService) Keep(_ context.Context, _, _ string, _ *dto.KeepPlanRequest) (*dto.PlanResponse, error) {
	return m.keepResult, m.keepErr
}

func (m *mockPlanService) Get(_ context.Context, _, _ string) (*dto.PlanResponse, error) {
	return m.getResult, m.getErr
}

func (m *mockPlanService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

func (m *mockPlanService) UpdateAssignmentStatus(_ context.Context, _, _, status string) error {
	m.lastStatus = status
	return m.statusErr
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportICS(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

func (m *mockExportService) ExportExcel(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// 认证模块
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Register(t *testing.T) {
	mock := &mockAuthService{
		registerResult: &dto.TokenResponse{
			AccessToken: "token-abc",
			ExpiresIn:   3600,
			User:        dto.UserResponse{ID: "user-1", Name: "Kim", Email: "kim@example.com"},
		},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/register", h.Register)

	body := jsonBody(t, dto.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "secret-password"})
	w := doRequest(r, http.MethodPost, "/auth/register", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("状态码 = %d, 期望 201 (body=%s)", w.Code, w.Body.String())
	}
	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("业务码 = %d, 期望 0", resp.Code)
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/register", h.Register)

	// 密码过短，binding 校验应拦截
	body := jsonBody(t, dto.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "short"})
	w := doRequest(r, http.MethodPost, "/auth/register", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10001 {
		t.Errorf("业务码 = %d, 期望 10001", resp.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailTaken})

	r := gin.New()
	r.POST("/auth/register", h.Register)

	body := jsonBody(t, dto.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "secret-password"})
	w := doRequest(r, http.MethodPost, "/auth/register", body)

	if w.Code != http.StatusConflict {
		t.Fatalf("状态码 = %d, 期望 409", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10006 {
		t.Errorf("业务码 = %d, 期望 10006", resp.Code)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)

	body := jsonBody(t, dto.LoginRequest{Email: "kim@example.com", Password: "wrong-password"})
	w := doRequest(r, http.MethodPost, "/auth/login", body)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("状态码 = %d, 期望 401", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10007 {
		t.Errorf("业务码 = %d, 期望 10007", resp.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/logout", setAuth("user-1"), h.Logout)

	w := doRequest(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("logout jti = %q, 期望 test-jti", mock.logoutJTI)
	}
}

// ═══════════════════════════════════════════════════════════
// 科目模块
// ═══════════════════════════════════════════════════════════

func TestSubjectHandler_Create_Duplicate(t *testing.T) {
	h := NewSubjectHandler(&mockSubjectService{createErr: service.ErrSubjectExists})

	r := gin.New()
	r.POST("/subjects", setAuth("user-1"), h.Create)

	body := jsonBody(t, dto.CreateSubjectRequest{Name: "Algorithms"})
	w := doRequest(r, http.MethodPost, "/subjects", body)

	if w.Code != http.StatusConflict {
		t.Fatalf("状态码 = %d, 期望 409", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 11002 {
		t.Errorf("业务码 = %d, 期望 11002", resp.Code)
	}
}

func TestSubjectHandler_Get_NotFound(t *testing.T) {
	h := NewSubjectHandler(&mockSubjectService{getErr: service.ErrSubjectNotFound})

	r := gin.New()
	r.GET("/subjects/:id", setAuth("user-1"), h.Get)

	w := doRequest(r, http.MethodGet, "/subjects/subject-99", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("状态码 = %d, 期望 404", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 11001 {
		t.Errorf("业务码 = %d, 期望 11001", resp.Code)
	}
}

func TestSubjectHandler_Unauthenticated(t *testing.T) {
	h := NewSubjectHandler(&mockSubjectService{})

	// 不挂 setAuth，模拟未经过 JWTAuth 的请求
	r := gin.New()
	r.GET("/subjects/:id", h.Get)

	w := doRequest(r, http.MethodGet, "/subjects/subject-1", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("状态码 = %d, 期望 401", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10002 {
		t.Errorf("业务码 = %d, 期望 10002", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 学习计划模块
// ═══════════════════════════════════════════════════════════

func TestPlanHandler_Generate(t *testing.T) {
	mock := &mockPlanService{
		generateResult: &dto.PlanResponse{
			SubjectID: "subject-1",
			StudyDays: 4,
			Schedule: []dto.PlanDay{{
				Date:        "2025-01-15",
				DisplayDate: "Wednesday, Jan 15",
				Activities: []dto.PlanActivity{{
					Time: "9:00 AM - 10:30 AM", Topic: "Graph traversal", Type: "study",
				}},
			}},
		},
	}
	h := NewPlanHandler(mock)

	r := gin.New()
	r.POST("/subjects/:id/plan/generate", setAuth("user-1"), h.Generate)

	w := doRequest(r, http.MethodPost, "/subjects/subject-1/plan/generate", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200 (body=%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Graph traversal") {
		t.Errorf("响应缺少计划内容: %s", w.Body.String())
	}
}

func TestPlanHandler_Generate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"科目不存在", service.ErrSubjectNotFound, http.StatusNotFound, 11001},
		{"生成请求在途", service.ErrGenerationInFlight, http.StatusConflict, 13001},
		{"无学习素材", service.ErrNoContent, http.StatusUnprocessableEntity, 13002},
		{"生成超时", generator.ErrGenerationTimeout, http.StatusGatewayTimeout, 13003},
		{"生成服务异常", generator.ErrGenerationFailure, http.StatusBadGateway, 13004},
		{"结果缺字段", planner.ErrMissingField, http.StatusUnprocessableEntity, 13005},
		{"结果时间段非法", planner.ErrMalformedTimeRange, http.StatusUnprocessableEntity, 13005},
		{"未知错误", errors.New("boom"), http.StatusInternalServerError, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPlanHandler(&mockPlanService{generateErr: tt.err})

			r := gin.New()
			r.POST("/subjects/:id/plan/generate", setAuth("user-1"), h.Generate)

			w := doRequest(r, http.MethodPost, "/subjects/subject-1/plan/generate", nil)

			if w.Code != tt.wantStatus {
				t.Fatalf("状态码 = %d, 期望 %d", w.Code, tt.wantStatus)
			}
			if resp := parseResponse(t, w); resp.Code != tt.wantCode {
				t.Errorf("业务码 = %d, 期望 %d", resp.Code, tt.wantCode)
			}
		})
	}
}

// 失败响应的 details 需携带底层错误详情（如生成服务的原始报文），便于排障
func TestPlanHandler_Generate_FailureDetails(t *testing.T) {
	genErr := fmt.Errorf("%w: HTTP 429: rate limited", generator.ErrGenerationFailure)
	h := NewPlanHandler(&mockPlanService{generateErr: genErr})

	r := gin.New()
	r.POST("/subjects/:id/plan/generate", setAuth("user-1"), h.Generate)

	w := doRequest(r, http.MethodPost, "/subjects/subject-1/plan/generate", nil)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("状态码 = %d, 期望 502", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 13004 {
		t.Errorf("业务码 = %d, 期望 13004", resp.Code)
	}
	if !strings.Contains(resp.Details, "HTTP 429: rate limited") {
		t.Errorf("details = %q, 缺少原始报文", resp.Details)
	}
}

func TestPlanHandler_Generate_ValidationDetails(t *testing.T) {
	valErr := fmt.Errorf("%w: %q", planner.ErrMalformedTimeRange, "25:00 XM - 26:00 YM")
	h := NewPlanHandler(&mockPlanService{generateErr: valErr})

	r := gin.New()
	r.POST("/subjects/:id/plan/generate", setAuth("user-1"), h.Generate)

	w := doRequest(r, http.MethodPost, "/subjects/subject-1/plan/generate", nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("状态码 = %d, 期望 422", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 13005 {
		t.Errorf("业务码 = %d, 期望 13005", resp.Code)
	}
	if !strings.Contains(resp.Details, "25:00 XM") {
		t.Errorf("details = %q, 缺少违规字段内容", resp.Details)
	}
}

func TestPlanHandler_Keep(t *testing.T) {
	mock := &mockPlanService{keepResult: &dto.PlanResponse{SubjectID: "subject-1", StudyDays: 1}}
	h := NewPlanHandler(mock)

	r := gin.New()
	r.POST("/subjects/:id/plan", setAuth("user-1"), h.Keep)

	body := jsonBody(t, dto.KeepPlanRequest{
		Schedule: []dto.PlanDay{{
			Date: "2025-01-15",
			Activities: []dto.PlanActivity{{
				Time: "9:00 AM - 10:30 AM", Topic: "Graph traversal", Type: "study",
			}},
		}},
		Assignments: []dto.PlanAssignment{},
	})
	w := doRequest(r, http.MethodPost, "/subjects/subject-1/plan", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("状态码 = %d, 期望 201 (body=%s)", w.Code, w.Body.String())
	}
}

func TestPlanHandler_Keep_MalformedTimeRange(t *testing.T) {
	keepErr := fmt.Errorf("%w: %q", planner.ErrMalformedTimeRange, "not a time range")
	h := NewPlanHandler(&mockPlanService{keepErr: keepErr})

	r := gin.New()
	r.POST("/subjects/:id/plan", setAuth("user-1"), h.Keep)

	body := jsonBody(t, dto.KeepPlanRequest{
		Schedule: []dto.PlanDay{{
			Date: "2025-01-15",
			Activities: []dto.PlanActivity{{
				Time: "not a time range", Topic: "Graph traversal",
			}},
		}},
		Assignments: []dto.PlanAssignment{},
	})
	w := doRequest(r, http.MethodPost, "/subjects/subject-1/plan", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("状态码 = %d, 期望 422", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 13006 {
		t.Errorf("业务码 = %d, 期望 13006", resp.Code)
	}
	if !strings.Contains(resp.Details, "not a time range") {
		t.Errorf("details = %q, 缺少违规字段内容", resp.Details)
	}
}

func TestPlanHandler_UpdateAssignmentStatus(t *testing.T) {
	mock := &mockPlanService{}
	h := NewPlanHandler(mock)

	r := gin.New()
	r.PATCH("/assignments/:id/status", setAuth("user-1"), h.UpdateAssignmentStatus)

	body := jsonBody(t, dto.UpdateAssignmentStatusRequest{Status: "completed"})
	w := doRequest(r, http.MethodPatch, "/assignments/assignment-1/status", body)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200 (body=%s)", w.Code, w.Body.String())
	}
	if mock.lastStatus != "completed" {
		t.Errorf("传入状态 = %q, 期望 completed", mock.lastStatus)
	}
}

func TestPlanHandler_UpdateAssignmentStatus_InvalidStatus(t *testing.T) {
	h := NewPlanHandler(&mockPlanService{})

	r := gin.New()
	r.PATCH("/assignments/:id/status", setAuth("user-1"), h.UpdateAssignmentStatus)

	// oneof 校验在 binding 层拦截
	body := jsonBody(t, dto.UpdateAssignmentStatusRequest{Status: "done"})
	w := doRequest(r, http.MethodPatch, "/assignments/assignment-1/status", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10001 {
		t.Errorf("业务码 = %d, 期望 10001", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 导出模块
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportICS(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		filename: "Algorithms_plan.ics",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/subjects/:id/plan/export/ics", setAuth("user-1"), h.ExportICS)

	w := doRequest(r, http.MethodGet, "/subjects/subject-1/plan/export/ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q, 期望 text/calendar", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Algorithms_plan.ics") {
		t.Errorf("Content-Disposition = %q, 缺少文件名", cd)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("响应体不是 iCalendar: %s", w.Body.String())
	}
}

func TestExportHandler_NoPlan(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoPlan})

	r := gin.New()
	r.GET("/subjects/:id/plan/export/xlsx", setAuth("user-1"), h.ExportExcel)

	w := doRequest(r, http.MethodGet, "/subjects/subject-1/plan/export/xlsx", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("状态码 = %d, 期望 404", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 14001 {
		t.Errorf("业务码 = %d, 期望 14001", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
