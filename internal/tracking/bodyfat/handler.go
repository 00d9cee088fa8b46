package bodyfat

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
	"github.com/fittrackhq/fittrack/internal/tracking/bodycomp"
	"github.com/fittrackhq/fittrack/internal/tracking/units"
	"github.com/fittrackhq/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=bodyfat_test

type entriesRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	History(ctx context.Context, userID, limit int) ([]Entry, error)
	Delete(ctx context.Context, userID, id int) error
}

const (
	UnitCm = "cm"
	UnitIn = "in"

	defaultHistoryLimit = 50
)

type EstimateRequest struct {
	Sex    bodycomp.Sex `json:"sex"`
	Waist  float64      `json:"waist"`
	Neck   float64      `json:"neck"`
	Hip    float64      `json:"hip"`
	Height float64      `json:"height"`
	// Unit of all four measurements, "cm" (default) or "in"
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

type DeleteEntryResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo    entriesRepo
	metrics *metrics.Manager
}

func NewHandler(repo entriesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

// HandleAdd estimates body fat from circumference measurements and stores
// the result together with the normalized measurements.
func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyfat.new")
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

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new body fat entry, unmarshal json params: %s", err)
		http.Error(w, "add body fat entry failed", http.StatusBadRequest)
		return
	}

	waist, neck, hip, height := req.Waist, req.Neck, req.Hip, req.Height
	switch req.Unit {
	case UnitIn:
		waist = units.InToCm(waist)
		neck = units.InToCm(neck)
		hip = units.InToCm(hip)
		height = units.InToCm(height)
	case UnitCm, "":
	default:
		http.Error(w, "error, unit must be cm or in", http.StatusBadRequest)
		return
	}

	percent, err := bodycomp.Estimate(bodycomp.Params{
		Sex:      req.Sex,
		WaistCm:  waist,
		NeckCm:   neck,
		HipCm:    hip,
		HeightCm: height,
	})
	if err != nil {
		if errors.Is(err, bodycomp.ErrInvalidSex) || errors.Is(err, bodycomp.ErrInvalidMeasurements) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to estimate body fat: %s", err)
		http.Error(w, "failed to estimate body fat", http.StatusInternalServerError)
		return
	}

	entry := Entry{
		UserID:    userID,
		Sex:       req.Sex,
		WaistCm:   waist,
		NeckCm:    neck,
		HipCm:     hip,
		HeightCm:  height,
		Percent:   percent,
		CreatedAt: req.CreatedAt,
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	addedEntry, err := handler.repo.Add(ctx, entry)
	if err != nil {
		log.Errorf("failed to add new body fat entry: %s", err)
		http.Error(w, "error, failed to add new body fat entry", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEntriesAdded.WithLabelValues("bodyfat").Inc()

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal new body fat entry: %s", err)
		http.Error(w, "error, failed to add new body fat entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new body fat entry added: %s", addedEntryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyfat.history")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			http.Error(w, "error, invalid limit param", http.StatusBadRequest)
			return
		}
		limit = l
	}

	entries, err := handler.repo.History(ctx, userID, limit)
	if err != nil {
		log.Errorf("failed to get body fat history for user %d: %s", userID, err)
		http.Error(w, "failed to get body fat history", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("failed to marshal body fat history: %s", err)
		http.Error(w, "failed to marshal body fat history", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyfat.delete")
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
		if errors.Is(err, ErrEntryNotFound) {
			log.Debugf("body fat entry %d not found", id)
			http.Error(w, "body fat entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete body fat entry %d: %s", id, err)
		http.Error(w, "body fat entry not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEntryResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
