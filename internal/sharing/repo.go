package sharing

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, grant Grant) (_ *Grant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sharing.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO sharing_grant (owner_id, grantee_id, type, created_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		grant.OwnerID, grant.GranteeID, string(grant.Type), grant.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrAlreadyGranted
		}
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrAlreadyGranted
		}
		return nil, err
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil && pkg.IsUniqueViolationError(err) {
			return nil, ErrAlreadyGranted
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("grant.id", id))

	grant.ID = id
	return &grant, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, granteeID int, t Type) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sharing.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner_id", ownerID))
	span.SetAttributes(attribute.Int("grantee_id", granteeID))
	span.SetAttributes(attribute.String("type", string(t)))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM sharing_grant WHERE owner_id = $1 AND grantee_id = $2 AND type = $3`,
		ownerID, granteeID, string(t),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGrantNotFound
	}
	return nil
}

// ListByOwner returns all grants the owner handed out.
func (r *Repo) ListByOwner(ctx context.Context, ownerID int) (_ []Grant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sharing.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner_id", ownerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, owner_id, grantee_id, type, created_at
			FROM sharing_grant
			WHERE owner_id = $1
			ORDER BY created_at DESC;`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2grants(rows)
}

// ListByGrantee returns all grants handed to the grantee.
func (r *Repo) ListByGrantee(ctx context.Context, granteeID int) (_ []Grant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sharing.listByGrantee")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("grantee_id", granteeID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, owner_id, grantee_id, type, created_at
			FROM sharing_grant
			WHERE grantee_id = $1
			ORDER BY created_at DESC;`,
		granteeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2grants(rows)
}

// Exists reports whether the owner granted the given permission to the grantee.
func (r *Repo) Exists(ctx context.Context, ownerID, granteeID int, t Type) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sharing.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT COUNT(*) FROM sharing_grant
			WHERE owner_id = $1 AND grantee_id = $2 AND type = $3;`,
		ownerID, granteeID, string(t),
	)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return false, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count > 0, nil
		}
	}

	return false, errors.New("unexpected error, failed to check grant existence")
}

func (r *Repo) rows2grants(rows pgx.Rows) ([]Grant, error) {
	var grants []Grant
	for rows.Next() {
		var g Grant
		var t string
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.GranteeID, &t, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Type = Type(t)
		grants = append(grants, g)
	}

	if grants == nil {
		grants = make([]Grant, 0)
	}

	return grants, nil
}
