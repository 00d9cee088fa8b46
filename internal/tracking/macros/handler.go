package macros

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=macros_test

type entriesRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, userID, id int) (*Entry, error)
	List(ctx context.Context, params ListParams) (_ []Entry, total int, err error)
	ListForDay(ctx context.Context, userID int, dayKey string) ([]Entry, error)
	Delete(ctx context.Context, userID, id int) error
}

type goalsProvider interface {
	MacroGoals(ctx context.Context, userID int) (Goals, error)
}

type AddEntryRequest struct {
	Entry
	// a pointer so that an omitted margin can fall back to the default
	ErrorMarginPct *float64 `json:"errorMarginPct"`
}

type DeleteEntryResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type Handler struct {
	repo    entriesRepo
	goals   goalsProvider
	metrics *metrics.Manager
}

func NewHandler(repo entriesRepo, goals goalsProvider, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		goals:   goals,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.macros.new")
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
		log.Tracef("new macro entry, unmarshal json params: %s", err)
		http.Error(w, "add macro entry failed", http.StatusBadRequest)
		return
	}

	entry := req.Entry
	entry.UserID = userID
	if req.ErrorMarginPct != nil {
		entry.ErrorMarginPct = *req.ErrorMarginPct
	} else {
		entry.ErrorMarginPct = DefaultErrorMarginPct
	}

	if !entry.IsLoggable() {
		http.Error(w, "error, entry has no name and no macro values", http.StatusBadRequest)
		return
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.Date = daykey.ToDayKey(entry.Date)
	if entry.Date == "" {
		entry.Date = daykey.FromTime(entry.CreatedAt)
	}

	addedEntry, err := handler.repo.Add(ctx, entry)
	if err != nil {
		log.Errorf("failed to add new macro entry [%s]: %s", entry.Name, err)
		http.Error(w, "error, failed to add new macro entry", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEntriesAdded.WithLabelValues("macros").Inc()

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal new macro entry: %s", err)
		http.Error(w, "error, failed to add new macro entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new macro entry added: %s", addedEntryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

// HandleDayStats returns the aggregated macro statistics for one day. The
// response body is the JSON null literal when nothing was logged that day.
func (handler *Handler) HandleDayStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.macros.dayStats")
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

	entries, err := handler.repo.ListForDay(ctx, userID, day)
	if err != nil {
		log.Errorf("failed to get macro entries for day %s: %s", day, err)
		http.Error(w, "failed to get macro entries", http.StatusInternalServerError)
		return
	}

	goals, err := handler.goals.MacroGoals(ctx, userID)
	if err != nil {
		// stats still make sense without goals
		log.Errorf("failed to get macro goals for user %d: %s", userID, err)
		goals = Goals{}
	}

	stats := AggregateForDay(entries, day, goals)

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal day stats: %s", err)
		http.Error(w, "failed to marshal day stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.macros.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle get macro entries page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle get macro entries page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	entries, total, err := handler.repo.List(ctx, ListParams{
		EntryParams: EntryParams{
			UserID: userID,
			DayKey: daykey.ToDayKey(r.URL.Query().Get("day")),
		},
		Page: page,
		Size: size,
	})
	if err != nil {
		log.Errorf("list macro entries error: %s", err)
		http.Error(w, "failed to get macro entries", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   total,
	})
	if err != nil {
		log.Errorf("marshal macro entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.macros.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.Debugf("macro entry %d not found", id)
			http.Error(w, "macro entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete macro entry %d: %s", id, err)
		http.Error(w, "macro entry not deleted", http.StatusInternalServerError)
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
