package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ubhospitality/inventory-backend/api/middleware"
	"github.com/ubhospitality/inventory-backend/internal/requests"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
)

type stubRequestService struct {
	change *requests.ChangeResult
	entry  *requests.RequestDTO
	page   *requests.RequestList
	err    error

	lastActor    requests.Actor
	lastDecision enums.RequestDecision
	lastList     requests.ListRequestsInput
}

func (s *stubRequestService) ChangeQuantity(ctx context.Context, actor requests.Actor, input requests.ChangeQuantityInput) (*requests.ChangeResult, error) {
	s.lastActor = actor
	return s.change, s.err
}

func (s *stubRequestService) Decide(ctx context.Context, actor requests.Actor, requestID uuid.UUID, decision enums.RequestDecision) (*requests.RequestDTO, error) {
	s.lastActor = actor
	s.lastDecision = decision
	return s.entry, s.err
}

func (s *stubRequestService) Get(ctx context.Context, id uuid.UUID) (*requests.RequestDTO, error) {
	return s.entry, s.err
}

func (s *stubRequestService) List(ctx context.Context, input requests.ListRequestsInput) (*requests.RequestList, error) {
	s.lastList = input
	return s.page, s.err
}

func (s *stubRequestService) Delete(ctx context.Context, actor requests.Actor, id uuid.UUID) error {
	s.lastActor = actor
	return s.err
}

func authedRequest(r *http.Request, userID uuid.UUID, role enums.UserRole) *http.Request {
	ctx := middleware.WithUserID(r.Context(), userID.String())
	ctx = middleware.WithRole(ctx, role.String())
	return r.WithContext(ctx)
}

func TestChangeItemQuantityAppliedReturns200(t *testing.T) {
	userID := uuid.New()
	svc := &stubRequestService{change: &requests.ChangeResult{Applied: true}}
	handler := ChangeItemQuantity(svc, nil)

	payload := `{"item_id":"` + uuid.NewString() + `","requested_quantity":25}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, userID, enums.UserRoleManager)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastActor.UserID != userID || svc.lastActor.Role != enums.UserRoleManager {
		t.Fatalf("unexpected actor %+v", svc.lastActor)
	}
}

func TestChangeItemQuantityPendingReturns202(t *testing.T) {
	pending := &requests.RequestDTO{ID: uuid.New(), Status: enums.RequestStatusPending}
	svc := &stubRequestService{change: &requests.ChangeResult{Applied: false, Request: pending}}
	handler := ChangeItemQuantity(svc, nil)

	payload := `{"item_id":"` + uuid.NewString() + `","requested_quantity":25}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	req = authedRequest(req, uuid.New(), enums.UserRoleEmployee)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", resp.Code)
	}

	var envelope struct {
		Data requests.ChangeResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Applied || envelope.Data.Request == nil {
		t.Fatalf("expected pending result got %+v", envelope.Data)
	}
}

func TestChangeItemQuantityMissingUserContext(t *testing.T) {
	handler := ChangeItemQuantity(&stubRequestService{}, nil)

	payload := `{"item_id":"` + uuid.NewString() + `","requested_quantity":25}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDecideRequestApprove(t *testing.T) {
	entry := &requests.RequestDTO{ID: uuid.New(), Status: enums.RequestStatusApproved}
	svc := &stubRequestService{entry: entry}
	handler := DecideRequest(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+entry.ID.String()+"/decision", bytes.NewReader([]byte(`{"decision":"approve"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withChiParam(authedRequest(req, uuid.New(), enums.UserRoleManager), "requestID", entry.ID.String())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastDecision != enums.RequestDecisionApprove {
		t.Fatalf("expected approve decision got %q", svc.lastDecision)
	}
}

func TestDecideRequestUnknownVerdict(t *testing.T) {
	handler := DecideRequest(&stubRequestService{}, nil)

	requestID := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+requestID+"/decision", bytes.NewReader([]byte(`{"decision":"maybe"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withChiParam(authedRequest(req, uuid.New(), enums.UserRoleManager), "requestID", requestID)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDecideRequestAlreadyFinalized(t *testing.T) {
	svc := &stubRequestService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "request already finalized")}
	handler := DecideRequest(svc, nil)

	requestID := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+requestID+"/decision", bytes.NewReader([]byte(`{"decision":"reject"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withChiParam(authedRequest(req, uuid.New(), enums.UserRoleAdmin), "requestID", requestID)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestListRequestsForwardsFilters(t *testing.T) {
	itemID := uuid.New()
	svc := &stubRequestService{page: &requests.RequestList{}}
	handler := ListRequests(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?limit=5&status=pending&item_id="+itemID.String()+"&cursor=abc", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastList.Limit != 5 || svc.lastList.Cursor != "abc" {
		t.Fatalf("unexpected list input %+v", svc.lastList)
	}
	if svc.lastList.ItemID == nil || *svc.lastList.ItemID != itemID {
		t.Fatalf("expected item filter forwarded got %+v", svc.lastList)
	}
	if svc.lastList.Status == nil || *svc.lastList.Status != enums.RequestStatusPending {
		t.Fatalf("expected status filter forwarded got %+v", svc.lastList)
	}
}

func TestListRequestsRejectsBadStatus(t *testing.T) {
	handler := ListRequests(&stubRequestService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?status=bogus", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDeleteRequestForwardsActor(t *testing.T) {
	userID := uuid.New()
	svc := &stubRequestService{}
	handler := DeleteRequest(svc, nil)

	requestID := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/requests/"+requestID, nil)
	req = withChiParam(authedRequest(req, userID, enums.UserRoleAdmin), "requestID", requestID)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastActor.UserID != userID || svc.lastActor.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected actor %+v", svc.lastActor)
	}
}
