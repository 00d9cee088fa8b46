package sharing

import (
	"context"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sharing_test

type grantsRepo interface {
	Add(ctx context.Context, grant Grant) (*Grant, error)
	Delete(ctx context.Context, ownerID, granteeID int, t Type) error
	ListByOwner(ctx context.Context, ownerID int) ([]Grant, error)
	ListByGrantee(ctx context.Context, granteeID int) ([]Grant, error)
	Exists(ctx context.Context, ownerID, granteeID int, t Type) (bool, error)
}

type Service struct {
	repo grantsRepo
}

func NewService(repo grantsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Grant(ctx context.Context, ownerID, granteeID int, t Type) (_ *Grant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sharing.grant")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner_id", ownerID))
	span.SetAttributes(attribute.Int("grantee_id", granteeID))
	span.SetAttributes(attribute.String("type", string(t)))

	if !t.IsValid() {
		return nil, ErrInvalidType
	}
	if ownerID == granteeID {
		return nil, ErrSelfGrant
	}

	return s.repo.Add(ctx, Grant{
		OwnerID:   ownerID,
		GranteeID: granteeID,
		Type:      t,
		CreatedAt: time.Now(),
	})
}

func (s *Service) Revoke(ctx context.Context, ownerID, granteeID int, t Type) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sharing.revoke")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner_id", ownerID))
	span.SetAttributes(attribute.Int("grantee_id", granteeID))
	span.SetAttributes(attribute.String("type", string(t)))

	if !t.IsValid() {
		return ErrInvalidType
	}

	return s.repo.Delete(ctx, ownerID, granteeID, t)
}

// Granted returns the grants the user handed out to others.
func (s *Service) Granted(ctx context.Context, ownerID int) (_ []Grant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sharing.granted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.ListByOwner(ctx, ownerID)
}

// Received returns the grants others handed to the user.
func (s *Service) Received(ctx context.Context, granteeID int) (_ []Grant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sharing.received")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.ListByGrantee(ctx, granteeID)
}

// Allowed reports whether the viewer may perform t-scoped actions on the
// owner's data. Owners are always allowed on their own data.
func (s *Service) Allowed(ctx context.Context, ownerID, viewerID int, t Type) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sharing.allowed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID == viewerID {
		return true, nil
	}
	if !t.IsValid() {
		return false, ErrInvalidType
	}

	return s.repo.Exists(ctx, ownerID, viewerID, t)
}
