package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/sharing"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	Get(ctx context.Context, userID, id int) (*Session, error)
	List(ctx context.Context, params ListParams) (_ []Session, total int, err error)
	Live(ctx context.Context, userID int) (*Session, error)
	Delete(ctx context.Context, userID, id int) error
}

type accessChecker interface {
	Allowed(ctx context.Context, ownerID, viewerID int, t sharing.Type) (bool, error)
}

type SessionDetailsResponse struct {
	Session
	Exercises []GroupedExercise `json:"exercises"`
}

type ListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type DeleteSessionResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo    sessionsRepo
	access  accessChecker
	metrics *metrics.Manager
}

func NewHandler(repo sessionsRepo, access accessChecker, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		access:  access,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
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

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	session.UserID = userID
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	addedSession, err := handler.repo.Add(ctx, session)
	if err != nil {
		log.Errorf("failed to add new session for user %d: %s", userID, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEntriesAdded.WithLabelValues("sessions").Inc()

	addedSessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSessionJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	handler.writeSessionDetails(ctx, w, userID, mux.Vars(r)["id"])
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	handler.writeSessionsPage(ctx, w, r, userID)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete session %d: %s", id, err)
		http.Error(w, "error, failed to delete session", http.StatusInternalServerError)
		return
	}

	deletedJson, err := json.Marshal(DeleteSessionResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete session response: %s", err)
		http.Error(w, "error, failed to delete session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, deletedJson, http.StatusOK)
}

// HandleFriendList serves a friend's session page, gated by a watch
// session grant from that friend.
func (handler *Handler) HandleFriendList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.friendList")
	defer span.End()

	friendID, ok := handler.friendAccess(ctx, w, r)
	if !ok {
		return
	}

	handler.writeSessionsPage(ctx, w, r, friendID)
}

func (handler *Handler) HandleFriendGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.friendGet")
	defer span.End()

	friendID, ok := handler.friendAccess(ctx, w, r)
	if !ok {
		return
	}

	handler.writeSessionDetails(ctx, w, friendID, mux.Vars(r)["id"])
}

// HandleFriendLive serves the friend's in-progress session, or a JSON null
// when nothing is running right now.
func (handler *Handler) HandleFriendLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.friendLive")
	defer span.End()

	friendID, ok := handler.friendAccess(ctx, w, r)
	if !ok {
		return
	}

	liveSession, err := handler.repo.Live(ctx, friendID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Errorf("failed to get live session of user %d: %s", friendID, err)
		http.Error(w, "error, failed to get live session", http.StatusInternalServerError)
		return
	}

	liveSessionJson, err := json.Marshal(liveSession)
	if err != nil {
		log.Errorf("failed to marshal live session: %s", err)
		http.Error(w, "error, failed to get live session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, liveSessionJson, http.StatusOK)
}

// friendAccess resolves the friend id from the path and checks that the
// friend granted the caller watch session permission. On failure the
// response is already written and false is returned.
func (handler *Handler) friendAccess(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}

	vars := mux.Vars(r)
	friendID, err := strconv.Atoi(vars["friendId"])
	if err != nil {
		http.Error(w, "error, friend id NaN", http.StatusBadRequest)
		return 0, false
	}

	allowed, err := handler.access.Allowed(ctx, friendID, userID, sharing.TypeWatchSession)
	if err != nil {
		log.Errorf("failed to check watch session grant [%d -> %d]: %s", friendID, userID, err)
		http.Error(w, "error, failed to check permission", http.StatusInternalServerError)
		return 0, false
	}
	if !allowed {
		http.Error(w, "not allowed", http.StatusForbidden)
		return 0, false
	}

	return friendID, true
}

func (handler *Handler) writeSessionDetails(ctx context.Context, w http.ResponseWriter, ownerID int, idVar string) {
	id, err := strconv.Atoi(idVar)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %d: %s", id, err)
		http.Error(w, "error, failed to get session", http.StatusInternalServerError)
		return
	}

	detailsJson, err := json.Marshal(SessionDetailsResponse{
		Session:   *session,
		Exercises: GroupExercises(session.Sets),
	})
	if err != nil {
		log.Errorf("failed to marshal session details: %s", err)
		http.Error(w, "error, failed to get session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, detailsJson, http.StatusOK)
}

func (handler *Handler) writeSessionsPage(ctx context.Context, w http.ResponseWriter, r *http.Request, ownerID int) {
	vars := mux.Vars(r)

	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "error, size NaN", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "error, page must be greater than 0", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "error, size must be greater than 0", http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.List(ctx, ListParams{
		UserID: ownerID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		log.Errorf("failed to list sessions for user %d: %s", ownerID, err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Sessions: sessions,
		Total:    total,
	})
	if err != nil {
		log.Errorf("failed to marshal sessions list: %s", err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}
