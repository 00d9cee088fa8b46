package photos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=photos_test

type photosRepo interface {
	Add(ctx context.Context, photo Photo) (*Photo, error)
	Get(ctx context.Context, userID, id int) (*Photo, error)
	List(ctx context.Context, userID int) ([]Photo, error)
	Delete(ctx context.Context, userID, id int) error
}

type uriResolver interface {
	Resolve(ctx context.Context, photo Photo) (string, error)
}

type ResolveURIResponse struct {
	ID  int    `json:"id"`
	URI string `json:"uri"`
}

type DeletePhotoResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo     photosRepo
	resolver uriResolver
	metrics  *metrics.Manager
}

func NewHandler(repo photosRepo, resolver uriResolver, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		resolver: resolver,
		metrics:  metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.photos.new")
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

	var photo Photo
	if err := json.NewDecoder(r.Body).Decode(&photo); err != nil {
		log.Tracef("new photo, unmarshal json params: %s", err)
		http.Error(w, "add photo failed", http.StatusBadRequest)
		return
	}

	if photo.ObjectKey == "" {
		http.Error(w, "error, object key empty", http.StatusBadRequest)
		return
	}

	photo.UserID = userID
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now()
	}

	addedPhoto, err := handler.repo.Add(ctx, photo)
	if err != nil {
		log.Errorf("failed to add new photo [%s]: %s", photo.ObjectKey, err)
		http.Error(w, "error, failed to add new photo", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEntriesAdded.WithLabelValues("photos").Inc()

	addedPhotoJson, err := json.Marshal(addedPhoto)
	if err != nil {
		log.Errorf("failed to marshal new photo: %s", err)
		http.Error(w, "error, failed to add new photo", http.StatusInternalServerError)
		return
	}

	log.Debugf("new photo added: %s", addedPhotoJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedPhotoJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.photos.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	photos, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list photos error: %s", err)
		http.Error(w, "failed to get photos", http.StatusInternalServerError)
		return
	}

	photosJson, err := json.Marshal(photos)
	if err != nil {
		log.Errorf("marshal photos error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, photosJson, http.StatusOK)
}

// HandleResolveURI resolves the display URI of one photo. When another
// resolve for the same photo is already running, the client gets 425 and
// should retry.
func (handler *Handler) HandleResolveURI(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.photos.resolveUri")
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

	photo, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get photo %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	uri, err := handler.resolver.Resolve(ctx, *photo)
	if err != nil {
		if errors.Is(err, ErrResolveInFlight) {
			http.Error(w, "resolve in progress, retry shortly", http.StatusTooEarly)
			return
		}
		log.Errorf("failed to resolve uri for photo %d: %s", id, err)
		http.Error(w, "failed to resolve photo uri", http.StatusInternalServerError)
		return
	}

	resolveRespJson, err := json.Marshal(ResolveURIResponse{
		ID:  id,
		URI: uri,
	})
	if err != nil {
		log.Errorf("failed to marshal resolve response: %s", err)
		http.Error(w, "failed to marshal resolve response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resolveRespJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.photos.delete")
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
		if errors.Is(err, ErrPhotoNotFound) {
			log.Debugf("photo %d not found", id)
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete photo %d: %s", id, err)
		http.Error(w, "photo not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletePhotoResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
