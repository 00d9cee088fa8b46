package creatine

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
	"github.com/fittrackhq/fittrack/internal/tracking/daykey"
	"github.com/fittrackhq/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=creatine_test

type entriesRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	ListBetween(ctx context.Context, userID int, from, to time.Time) ([]Entry, error)
	Delete(ctx context.Context, userID, id int) error
}

type AddEntryRequest struct {
	Entry
	// a pointer so that an omitted amount can fall back to the default dose
	Grams *float64 `json:"grams"`
}

type DayResponse struct {
	DayKey     string  `json:"dayKey"`
	Entries    []Entry `json:"entries"`
	TotalGrams float64 `json:"totalGrams"`
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

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.creatine.new")
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

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new creatine entry, unmarshal json params: %s", err)
		http.Error(w, "add creatine entry failed", http.StatusBadRequest)
		return
	}

	entry := req.Entry
	entry.UserID = userID
	if req.Grams != nil {
		entry.Grams = *req.Grams
	} else {
		entry.Grams = DefaultGrams
	}

	if entry.Grams <= 0 {
		http.Error(w, "error, grams must be positive", http.StatusBadRequest)
		return
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	addedEntry, err := handler.repo.Add(ctx, entry)
	if err != nil {
		log.Errorf("failed to add new creatine entry: %s", err)
		http.Error(w, "error, failed to add new creatine entry", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEntriesAdded.WithLabelValues("creatine").Inc()

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal new creatine entry: %s", err)
		http.Error(w, "error, failed to add new creatine entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new creatine entry added: %s", addedEntryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.creatine.day")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	day := daykey.ToDayKey(vars["day"])
	if day == "" {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	dayStart, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	entries, err := handler.repo.ListBetween(ctx, userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		log.Errorf("failed to get creatine entries for day %s: %s", day, err)
		http.Error(w, "failed to get creatine entries", http.StatusInternalServerError)
		return
	}

	dayEntries := FilterForDay(entries, day)
	if dayEntries == nil {
		dayEntries = make([]Entry, 0)
	}

	dayRespJson, err := json.Marshal(DayResponse{
		DayKey:     day,
		Entries:    dayEntries,
		TotalGrams: TotalGrams(dayEntries),
	})
	if err != nil {
		log.Errorf("failed to marshal creatine day response: %s", err)
		http.Error(w, "failed to marshal creatine day response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dayRespJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.creatine.delete")
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
			log.Debugf("creatine entry %d not found", id)
			http.Error(w, "creatine entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete creatine entry %d: %s", id, err)
		http.Error(w, "creatine entry not deleted", http.StatusInternalServerError)
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
