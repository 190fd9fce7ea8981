package appointment

import (
	"context"

	"github.com/alphaclinic/clinic-manager/internal/audit"
	domain "github.com/alphaclinic/clinic-manager/internal/domain/appointment"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// RESULT
// ======================================================

type ChangeStatusResult struct {
	Appointment *models.Appointment `json:"appointment"`
	MessageKey  string              `json:"message_key"`
	Visit       *models.Visit       `json:"visit,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// FeedCache invalidates the cached incomplete-visit count. A completion
// materializes a visit with empty clinical and payment data, so the
// notification bell must reflect it before the cached count expires.
type FeedCache interface {
	Invalidate(ctx context.Context)
}

type ChangeStatus struct {
	repo  domain.Repository
	cache FeedCache
	audit *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	feedCache FeedCache,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		cache: feedCache,
		audit: audit,
	}
}

// Execute moves the appointment to newStatus. An unrecognized status is
// rejected without touching the row. The visit side effect fires only
// on the actual transition into completed: an appointment that is
// already completed and saved again does not re-trigger it, and the
// repository's one-to-one guard keeps concurrent completions from ever
// producing two visits.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	newStatus string,
) (*ChangeStatusResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	next := domain.Status(newStatus)
	if err := domain.CanTransition(domain.Status(ap.Status), next); err != nil {
		return nil, err
	}

	becameCompleted := next == domain.StatusCompleted &&
		domain.Status(ap.Status) != domain.StatusCompleted

	ap.Status = string(next)

	visit, err := uc.repo.UpdateStatus(ctx, ap, becameCompleted)
	if err != nil {
		return nil, err
	}

	if visit != nil && uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_status_" + string(next),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &ChangeStatusResult{
		Appointment: ap,
		MessageKey:  domain.MessageKey(next),
		Visit:       visit,
	}, nil
}
