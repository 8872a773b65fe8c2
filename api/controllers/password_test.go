package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
)

type stubPasswordResetService struct {
	err error

	requested []string
	resets    []string
}

func (s *stubPasswordResetService) RequestReset(ctx context.Context, email string) error {
	if s.err != nil {
		return s.err
	}
	s.requested = append(s.requested, email)
	return nil
}

func (s *stubPasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.err != nil {
		return s.err
	}
	s.resets = append(s.resets, token)
	return nil
}

func TestAuthForgotPasswordAlwaysSucceeds(t *testing.T) {
	svc := &stubPasswordResetService{}
	handler := AuthForgotPassword(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", bytes.NewReader([]byte(`{"email":"whoever@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.requested) != 1 || svc.requested[0] != "whoever@example.com" {
		t.Fatalf("expected reset request got %v", svc.requested)
	}
}

func TestAuthForgotPasswordRejectsBadEmail(t *testing.T) {
	handler := AuthForgotPassword(&stubPasswordResetService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthResetPasswordSuccess(t *testing.T) {
	svc := &stubPasswordResetService{}
	handler := AuthResetPassword(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/reset-password", bytes.NewReader([]byte(`{"token":"reset-token","new_password":"Sup3r#Secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.resets) != 1 || svc.resets[0] != "reset-token" {
		t.Fatalf("expected reset applied got %v", svc.resets)
	}
}

func TestAuthResetPasswordUsedToken(t *testing.T) {
	svc := &stubPasswordResetService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "token already used")}
	handler := AuthResetPassword(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/reset-password", bytes.NewReader([]byte(`{"token":"reset-token","new_password":"Sup3r#Secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
