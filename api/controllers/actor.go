package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ubhospitality/inventory-backend/api/middleware"
	"github.com/ubhospitality/inventory-backend/internal/requests"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
)

// actorRole reads the authenticated caller's role from the request context.
// An unparseable or absent role comes back as the zero value, which every
// service treats as unprivileged.
func actorRole(r *http.Request) enums.UserRole {
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return ""
	}
	return role
}

// requestActor builds the workflow actor from the request context.
func requestActor(r *http.Request) (requests.Actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return requests.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return requests.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return requests.Actor{UserID: userID, Role: actorRole(r)}, nil
}
