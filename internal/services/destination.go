package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/crucial707/travel-tracker/internal/apperr"
	"github.com/crucial707/travel-tracker/internal/metrics"
	"github.com/crucial707/travel-tracker/internal/models"
)

// DestinationStore persists destinations. GetByID is not owner-filtered;
// Update and Delete only touch rows owned by ownerID and return sql.ErrNoRows otherwise.
type DestinationStore interface {
	Create(ctx context.Context, ownerID int, nd models.NewDestination) (*models.Destination, error)
	GetByID(ctx context.Context, id int) (*models.Destination, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Destination, error)
	Update(ctx context.Context, id, ownerID int, patch models.DestinationPatch) (*models.Destination, error)
	Delete(ctx context.Context, id, ownerID int) error
}

// Auditor records mutations. Implemented by repo.AuditRepo.
type Auditor interface {
	Log(ctx context.Context, userID int, action, resourceType string, resourceID int, details string) error
}

// DestinationService applies the ownership guard: every operation is scoped to
// the subject taken from a verified token.
type DestinationService struct {
	store DestinationStore
	audit Auditor
	log   *slog.Logger
}

// NewDestinationService returns a service over store. audit may be nil.
func NewDestinationService(store DestinationStore, audit Auditor) *DestinationService {
	return &DestinationService{
		store: store,
		audit: audit,
		log:   slog.Default().With("component", "destinations"),
	}
}

func (s *DestinationService) Create(ctx context.Context, subject int, nd models.NewDestination) (*models.Destination, error) {
	d, err := s.store.Create(ctx, subject, nd)
	if err != nil {
		return nil, s.fail("create", apperr.Internal(err))
	}
	metrics.IncDestinationOp("create", "ok")
	s.record(ctx, subject, models.AuditCreate, d.ID, d.Name)
	return d, nil
}

// List returns every destination owned by subject.
func (s *DestinationService) List(ctx context.Context, subject int) ([]models.Destination, error) {
	list, err := s.store.ListByOwner(ctx, subject)
	if err != nil {
		return nil, s.fail("list", apperr.Internal(err))
	}
	if list == nil {
		list = []models.Destination{}
	}
	metrics.IncDestinationOp("list", "ok")
	return list, nil
}

func (s *DestinationService) Get(ctx context.Context, subject, id int) (*models.Destination, error) {
	d, err := s.owned(ctx, subject, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	metrics.IncDestinationOp("get", "ok")
	return d, nil
}

// Update applies patch to a destination owned by subject. An empty patch
// returns the record unchanged.
func (s *DestinationService) Update(ctx context.Context, subject, id int, patch models.DestinationPatch) (*models.Destination, error) {
	d, err := s.owned(ctx, subject, id)
	if err != nil {
		return nil, s.fail("update", err)
	}
	if patch.Empty() {
		metrics.IncDestinationOp("update", "ok")
		return d, nil
	}

	updated, err := s.store.Update(ctx, id, subject, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.fail("update", apperr.ErrDestinationNotFound)
		}
		return nil, s.fail("update", apperr.Internal(err))
	}
	metrics.IncDestinationOp("update", "ok")
	s.record(ctx, subject, models.AuditUpdate, id, updated.Name)
	return updated, nil
}

func (s *DestinationService) Delete(ctx context.Context, subject, id int) error {
	if _, err := s.owned(ctx, subject, id); err != nil {
		return s.fail("delete", err)
	}
	if err := s.store.Delete(ctx, id, subject); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.fail("delete", apperr.ErrDestinationNotFound)
		}
		return s.fail("delete", apperr.Internal(err))
	}
	metrics.IncDestinationOp("delete", "ok")
	s.record(ctx, subject, models.AuditDelete, id, "")
	return nil
}

// owned loads id and checks it belongs to subject. Absent is NotFound; present
// but owned by someone else is Forbidden.
func (s *DestinationService) owned(ctx context.Context, subject, id int) (*models.Destination, error) {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrDestinationNotFound
		}
		return nil, apperr.Internal(err)
	}
	if d.OwnerID != subject {
		s.log.WarnContext(ctx, "ownership check failed", "destination_id", id, "subject", subject)
		return nil, apperr.ErrForbidden
	}
	return d, nil
}

func (s *DestinationService) fail(op string, err error) error {
	metrics.IncDestinationOp(op, apperr.KindOf(err).String())
	return err
}

func (s *DestinationService) record(ctx context.Context, subject int, action string, id int, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, subject, action, models.ResourceDestination, id, details); err != nil {
		s.log.ErrorContext(ctx, "audit log failed", "action", action, "destination_id", id, "err", err)
	}
}
