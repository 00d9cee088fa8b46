package sharing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

type GrantRequest struct {
	GranteeID int  `json:"granteeId"`
	Type      Type `json:"type"`
}

type RevokeRequest struct {
	GranteeID int  `json:"granteeId"`
	Type      Type `json:"type"`
}

type GrantsResponse struct {
	Grants []Grant `json:"grants"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sharing.grant")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("grant permission, unmarshal json params: %s", err)
		http.Error(w, "grant permission failed", http.StatusBadRequest)
		return
	}

	grant, err := handler.service.Grant(ctx, userID, req.GranteeID, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrSelfGrant):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAlreadyGranted):
			http.Error(w, "permission already granted", http.StatusConflict)
		default:
			log.Errorf("failed to grant %s to user %d: %s", req.Type, req.GranteeID, err)
			http.Error(w, "error, failed to grant permission", http.StatusInternalServerError)
		}
		return
	}

	grantJson, err := json.Marshal(grant)
	if err != nil {
		log.Errorf("failed to marshal grant: %s", err)
		http.Error(w, "failed to marshal grant", http.StatusInternalServerError)
		return
	}

	log.Debugf("new sharing grant: %s", grantJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, grantJson, http.StatusCreated)
}

func (handler *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sharing.revoke")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("revoke permission, unmarshal json params: %s", err)
		http.Error(w, "revoke permission failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.Revoke(ctx, userID, req.GranteeID, req.Type); err != nil {
		switch {
		case errors.Is(err, ErrInvalidType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrGrantNotFound):
			http.Error(w, "grant not found", http.StatusNotFound)
		default:
			log.Errorf("failed to revoke %s from user %d: %s", req.Type, req.GranteeID, err)
			http.Error(w, "error, failed to revoke permission", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteTextResponseOK(w, "revoked")
}

func (handler *Handler) HandleGranted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sharing.granted")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	grants, err := handler.service.Granted(ctx, userID)
	if err != nil {
		log.Errorf("failed to get granted permissions for user %d: %s", userID, err)
		http.Error(w, "failed to get granted permissions", http.StatusInternalServerError)
		return
	}

	grantsJson, err := json.Marshal(GrantsResponse{Grants: grants})
	if err != nil {
		log.Errorf("failed to marshal grants: %s", err)
		http.Error(w, "failed to marshal grants", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, grantsJson, http.StatusOK)
}

func (handler *Handler) HandleReceived(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sharing.received")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	grants, err := handler.service.Received(ctx, userID)
	if err != nil {
		log.Errorf("failed to get received permissions for user %d: %s", userID, err)
		http.Error(w, "failed to get received permissions", http.StatusInternalServerError)
		return
	}

	grantsJson, err := json.Marshal(GrantsResponse{Grants: grants})
	if err != nil {
		log.Errorf("failed to marshal grants: %s", err)
		http.Error(w, "failed to marshal grants", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, grantsJson, http.StatusOK)
}
