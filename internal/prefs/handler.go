package prefs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/internal/tracking/bodycomp"
	"github.com/fittrackhq/fittrack/internal/tracking/macros"
	"github.com/fittrackhq/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

type SetRequest struct {
	WeightGoalKilos *float64      `json:"weightGoalKilos"`
	Sex             *bodycomp.Sex `json:"sex"`
	MacroGoals      *macros.Goals `json:"macroGoals"`
}

type GetResponse struct {
	WeightGoalKilos *float64     `json:"weightGoalKilos"`
	Sex             bodycomp.Sex `json:"sex,omitempty"`
	MacroGoals      macros.Goals `json:"macroGoals"`
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{
		store: store,
	}
}

// HandleSet updates only the preferences present in the request body.
func (handler *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.prefs.set")
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

	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set preferences, unmarshal json params: %s", err)
		http.Error(w, "set preferences failed", http.StatusBadRequest)
		return
	}

	if req.WeightGoalKilos != nil {
		if err := handler.store.SetWeightGoal(ctx, userID, *req.WeightGoalKilos); err != nil {
			log.Errorf("failed to set weight goal for user %d: %s", userID, err)
			http.Error(w, "error, failed to set weight goal", http.StatusBadRequest)
			return
		}
	}

	if req.Sex != nil {
		if err := handler.store.SetSex(ctx, userID, *req.Sex); err != nil {
			if errors.Is(err, bodycomp.ErrInvalidSex) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Errorf("failed to set sex preference for user %d: %s", userID, err)
			http.Error(w, "error, failed to set sex preference", http.StatusInternalServerError)
			return
		}
	}

	if req.MacroGoals != nil {
		if err := handler.store.SetMacroGoals(ctx, userID, *req.MacroGoals); err != nil {
			log.Errorf("failed to set macro goals for user %d: %s", userID, err)
			http.Error(w, "error, failed to set macro goals", http.StatusInternalServerError)
			return
		}
	}

	pkg.WriteTextResponseOK(w, "updated")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.prefs.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var resp GetResponse

	weightGoal, err := handler.store.WeightGoal(ctx, userID)
	switch {
	case err == nil:
		resp.WeightGoalKilos = &weightGoal
	case errors.Is(err, ErrNotSet):
		// nothing set yet, leave nil
	default:
		log.Errorf("failed to get weight goal for user %d: %s", userID, err)
		http.Error(w, "failed to get preferences", http.StatusInternalServerError)
		return
	}

	sex, err := handler.store.Sex(ctx, userID)
	switch {
	case err == nil:
		resp.Sex = sex
	case errors.Is(err, ErrNotSet):
	default:
		log.Errorf("failed to get sex preference for user %d: %s", userID, err)
		http.Error(w, "failed to get preferences", http.StatusInternalServerError)
		return
	}

	resp.MacroGoals, err = handler.store.MacroGoals(ctx, userID)
	if err != nil {
		log.Errorf("failed to get macro goals for user %d: %s", userID, err)
		http.Error(w, "failed to get preferences", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal preferences: %s", err)
		http.Error(w, "failed to get preferences", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
