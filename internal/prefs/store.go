package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/internal/tracking/bodycomp"
	"github.com/fittrackhq/fittrack/internal/tracking/macros"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const (
	keyPrefix = "fittrack-prefs||"

	nameWeightGoal = "weight-goal"
	nameSex        = "sex"
	nameMacroGoals = "macro-goals"
)

var ErrNotSet = errors.New("preference not set")

// Store keeps the small per-user preference scalars in redis, durable
// across sessions, unlike the tracking records which live in postgres.
type Store struct {
	redisClient *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func prefKey(userID int, name string) string {
	return fmt.Sprintf("%s%d||%s", keyPrefix, userID, name)
}

func (s *Store) SetWeightGoal(ctx context.Context, userID int, kilos float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "prefs.setWeightGoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	if kilos <= 0 {
		return errors.New("weight goal must be positive")
	}

	return s.redisClient.Set(
		ctx,
		prefKey(userID, nameWeightGoal),
		strconv.FormatFloat(kilos, 'f', -1, 64),
		0,
	).Err()
}

func (s *Store) WeightGoal(ctx context.Context, userID int) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "prefs.weightGoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	val, err := s.redisClient.Get(ctx, prefKey(userID, nameWeightGoal)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotSet
		}
		return 0, err
	}

	kilos, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse stored weight goal: %w", err)
	}
	return kilos, nil
}

func (s *Store) SetSex(ctx context.Context, userID int, sex bodycomp.Sex) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "prefs.setSex")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	if !sex.IsValid() {
		return bodycomp.ErrInvalidSex
	}

	return s.redisClient.Set(ctx, prefKey(userID, nameSex), string(sex), 0).Err()
}

func (s *Store) Sex(ctx context.Context, userID int) (_ bodycomp.Sex, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "prefs.sex")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	val, err := s.redisClient.Get(ctx, prefKey(userID, nameSex)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotSet
		}
		return "", err
	}

	sex := bodycomp.Sex(val)
	if !sex.IsValid() {
		return "", fmt.Errorf("invalid stored sex variant: %q", val)
	}
	return sex, nil
}

func (s *Store) SetMacroGoals(ctx context.Context, userID int, goals macros.Goals) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "prefs.setMacroGoals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	goalsJson, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal macro goals: %w", err)
	}

	return s.redisClient.Set(ctx, prefKey(userID, nameMacroGoals), goalsJson, 0).Err()
}

// MacroGoals returns the user's daily macro targets. Unset goals come back
// as the zero value, a zero goal already means "no goal set" downstream.
func (s *Store) MacroGoals(ctx context.Context, userID int) (_ macros.Goals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "prefs.macroGoals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	val, err := s.redisClient.Get(ctx, prefKey(userID, nameMacroGoals)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return macros.Goals{}, nil
		}
		return macros.Goals{}, err
	}

	var goals macros.Goals
	if err := json.Unmarshal([]byte(val), &goals); err != nil {
		return macros.Goals{}, fmt.Errorf("unmarshal stored macro goals: %w", err)
	}
	return goals, nil
}
