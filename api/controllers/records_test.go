package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/timeeasy/backend/api/middleware"
	"github.com/timeeasy/backend/internal/records"
	pkgerrors "github.com/timeeasy/backend/pkg/errors"
	"github.com/timeeasy/backend/pkg/pagination"
)

type stubRecordsService struct {
	lastOwnerID uint
	lastQuery   records.ListQuery
	lastID      uint
	createResp  *records.RecordDTO
	listResp    *pagination.Envelope
	updateResp  *records.RecordDTO
	err         error
}

func (s *stubRecordsService) Create(ctx context.Context, ownerID uint, payload records.RecordPayload) (*records.RecordDTO, error) {
	s.lastOwnerID = ownerID
	return s.createResp, s.err
}

func (s *stubRecordsService) List(ctx context.Context, query records.ListQuery) (*pagination.Envelope, error) {
	s.lastQuery = query
	return s.listResp, s.err
}

func (s *stubRecordsService) Update(ctx context.Context, id uint, payload records.RecordPayload) (*records.RecordDTO, error) {
	s.lastID = id
	return s.updateResp, s.err
}

func (s *stubRecordsService) Delete(ctx context.Context, id uint) error {
	s.lastID = id
	return s.err
}

const createBody = `{"leave_or_overtime":"leave","leave_or_overtime_type":"personal_leave","start_time":"2024-01-01T09:00","end_time":"2024-01-01T17:00","leave_duration":8}`

func TestRecordAddUsesTokenIdentity(t *testing.T) {
	svc := &stubRecordsService{createResp: &records.RecordDTO{ID: 1, UserID: 3, Name: "alice"}}
	handler := RecordAdd(svc, false, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/user_leave_overtime/add", bytes.NewReader([]byte(createBody)))
	req = req.WithContext(middleware.WithUser(req.Context(), 3, "alice"))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastOwnerID != 3 {
		t.Fatalf("expected owner 3, got %d", svc.lastOwnerID)
	}
}

func TestRecordAddOpenModeReadsBodyUserID(t *testing.T) {
	svc := &stubRecordsService{createResp: &records.RecordDTO{ID: 1, UserID: 7}}
	handler := RecordAdd(svc, true, nil)

	body := `{"user_id":7,` + createBody[1:]
	req := httptest.NewRequest(http.MethodPost, "/api/user_leave_overtime/add", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastOwnerID != 7 {
		t.Fatalf("expected owner 7, got %d", svc.lastOwnerID)
	}
}

func TestRecordAddOpenModeMissingOwner(t *testing.T) {
	svc := &stubRecordsService{}
	handler := RecordAdd(svc, true, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/user_leave_overtime/add", bytes.NewReader([]byte(createBody)))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRecordListScopesToCaller(t *testing.T) {
	svc := &stubRecordsService{listResp: &pagination.Envelope{Page: 1, PerPage: 10, Data: []*records.RecordDTO{}}}
	handler := RecordList(svc, false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list?leave_or_overtime=leave&page=2&per_page=5", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), 3, "alice"))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.OwnerID == nil || *svc.lastQuery.OwnerID != 3 {
		t.Fatalf("expected owner scope 3, got %+v", svc.lastQuery.OwnerID)
	}
	if svc.lastQuery.Category == nil || *svc.lastQuery.Category != "leave" {
		t.Fatalf("expected category filter, got %+v", svc.lastQuery.Category)
	}
	if svc.lastQuery.Name != nil {
		t.Fatal("name filter must be ignored outside open mode")
	}
	if svc.lastQuery.Page.Page != 2 || svc.lastQuery.Page.PerPage != 5 {
		t.Fatalf("unexpected pagination %+v", svc.lastQuery.Page)
	}
}

func TestRecordListLenientPaging(t *testing.T) {
	svc := &stubRecordsService{listResp: &pagination.Envelope{Data: []*records.RecordDTO{}}}
	handler := RecordList(svc, false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list?page=abc&per_page=500", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), 3, "alice"))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.Page.Page != pagination.DefaultPage {
		t.Fatalf("non-numeric page must fall back to default, got %d", svc.lastQuery.Page.Page)
	}
	if svc.lastQuery.Page.PerPage != pagination.MaxPerPage {
		t.Fatalf("oversized per_page must clamp to %d, got %d", pagination.MaxPerPage, svc.lastQuery.Page.PerPage)
	}
}

func TestRecordListOpenModeAcceptsNameFilter(t *testing.T) {
	svc := &stubRecordsService{listResp: &pagination.Envelope{Data: []*records.RecordDTO{}}}
	handler := RecordList(svc, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list?name=alice&user_id=3", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.Name == nil || *svc.lastQuery.Name != "alice" {
		t.Fatalf("expected name filter, got %+v", svc.lastQuery.Name)
	}
	if svc.lastQuery.OwnerID == nil || *svc.lastQuery.OwnerID != 3 {
		t.Fatalf("expected owner filter 3, got %+v", svc.lastQuery.OwnerID)
	}
}

func TestRecordListWithoutIdentityRejected(t *testing.T) {
	svc := &stubRecordsService{}
	handler := RecordList(svc, false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func newPatchRequest(t *testing.T, id, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/user_leave_overtime/update/"+id, bytes.NewReader([]byte(body)))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRecordUpdateParsesPathID(t *testing.T) {
	svc := &stubRecordsService{updateResp: &records.RecordDTO{ID: 12}}
	handler := RecordUpdate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newPatchRequest(t, "12", `{"reason":"changed"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastID != 12 {
		t.Fatalf("expected id 12, got %d", svc.lastID)
	}
}

func TestRecordUpdateRejectsBadID(t *testing.T) {
	handler := RecordUpdate(&stubRecordsService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newPatchRequest(t, "abc", `{}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRecordUpdateMissingRecord(t *testing.T) {
	svc := &stubRecordsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "record not found")}
	handler := RecordUpdate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newPatchRequest(t, "99", `{"reason":"x"}`))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestRecordDelete(t *testing.T) {
	svc := &stubRecordsService{}
	handler := RecordDelete(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/user_leave_overtime/delete/4", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "4")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastID != 4 {
		t.Fatalf("expected id 4, got %d", svc.lastID)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] == "" {
		t.Fatal("expected deletion confirmation message")
	}
}
