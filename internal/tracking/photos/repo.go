package photos

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrPhotoNotFound = errors.New("photo not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, photo Photo) (_ *Photo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.photos.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO progress_photo (user_id, object_key, caption, created_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		photo.UserID, photo.ObjectKey, photo.Caption, photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("photo.id", id))

	photo.ID = id
	return &photo, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Photo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.photos.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, object_key, caption, created_at
			FROM progress_photo
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	photos, err := r.rows2photos(rows)
	if err != nil {
		return nil, err
	}

	if len(photos) != 1 {
		return nil, ErrPhotoNotFound
	}

	return &photos[0], nil
}

// List returns all photos of one user, latest first.
func (r *Repo) List(ctx context.Context, userID int) (_ []Photo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.photos.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, object_key, caption, created_at
			FROM progress_photo
			WHERE user_id = $1
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2photos(rows)
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.photos.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM progress_photo WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *Repo) rows2photos(rows pgx.Rows) ([]Photo, error) {
	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.UserID, &p.ObjectKey, &p.Caption, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}

	if photos == nil {
		photos = make([]Photo, 0)
	}

	return photos, nil
}
