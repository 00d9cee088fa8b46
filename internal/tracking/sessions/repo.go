package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID int
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the session together with its set timings in one transaction.
func (r *Repo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", session.UserID))
	span.SetAttributes(attribute.Int("sets", len(session.Sets)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO training_session
			(user_id, day_number, title, started_at, finished_at, duration_seconds, completed_sets, muscle_groups)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		session.UserID, session.DayNumber, session.Title,
		session.StartedAt, session.FinishedAt,
		session.DurationSeconds, session.CompletedSets, session.MuscleGroups,
	).Scan(&session.ID)
	if err != nil {
		return nil, err
	}

	for i := range session.Sets {
		err = tx.QueryRow(ctx, `
			INSERT INTO session_set
				(session_id, exercise_id, exercise_name, set_index, kilos, reps, duration_seconds)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			session.ID,
			session.Sets[i].ExerciseID, session.Sets[i].ExerciseName,
			session.Sets[i].SetIndex, session.Sets[i].Kilos,
			session.Sets[i].Reps, session.Sets[i].DurationSeconds,
		).Scan(&session.Sets[i].ID)
		if err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return &session, nil
}

// Get returns one session of the user, set timings included.
func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	session := &Session{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, user_id, day_number, title, started_at, finished_at, duration_seconds, completed_sets, muscle_groups
			FROM training_session
			WHERE id = $1 AND user_id = $2
		`, id, userID).
		Scan(
			&session.ID, &session.UserID, &session.DayNumber, &session.Title,
			&session.StartedAt, &session.FinishedAt,
			&session.DurationSeconds, &session.CompletedSets, &session.MuscleGroups,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, exercise_id, exercise_name, set_index, kilos, reps, duration_seconds
		FROM session_set
		WHERE session_id = $1
		ORDER BY id ASC;
	`, session.ID)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	session.Sets, err = rows2sets(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sets: %w", err)
	}
	return session, nil
}

// List returns the requested PAGE of the user's sessions, newest first,
// without set timings.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.SessionsCount(ctx, params.UserID)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, day_number, title, started_at, finished_at, duration_seconds, completed_sets, muscle_groups
		FROM training_session
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
		OFFSET $3;
	`, params.UserID, limit, offset)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, -1, err
	}
	return sessions, countAll, nil
}

func (r *Repo) SessionsCount(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM training_session WHERE user_id = $1;
	`, userID)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get sessions count")
}

// Live returns the user's most recent session with no finish timestamp.
func (r *Repo) Live(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.live")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	session := &Session{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, user_id, day_number, title, started_at, finished_at, duration_seconds, completed_sets, muscle_groups
			FROM training_session
			WHERE user_id = $1 AND finished_at IS NULL
			ORDER BY started_at DESC
			LIMIT 1
		`, userID).
		Scan(
			&session.ID, &session.UserID, &session.DayNumber, &session.Title,
			&session.StartedAt, &session.FinishedAt,
			&session.DurationSeconds, &session.CompletedSets, &session.MuscleGroups,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Delete removes the session and its set timings in one transaction.
func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err := tx.Exec(ctx, `
		DELETE FROM session_set
		WHERE session_id IN (SELECT id FROM training_session WHERE id = $1 AND user_id = $2)
	`, id, userID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM training_session WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.DayNumber, &s.Title,
			&s.StartedAt, &s.FinishedAt,
			&s.DurationSeconds, &s.CompletedSets, &s.MuscleGroups,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if sessions == nil {
		sessions = make([]Session, 0)
	}

	return sessions, nil
}

func rows2sets(rows pgx.Rows) ([]SetTiming, error) {
	var sets []SetTiming
	for rows.Next() {
		var s SetTiming
		if err := rows.Scan(
			&s.ID, &s.ExerciseID, &s.ExerciseName, &s.SetIndex,
			&s.Kilos, &s.Reps, &s.DurationSeconds,
		); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}

	if sets == nil {
		sets = make([]SetTiming, 0)
	}

	return sets, nil
}
