package repository

import (
	"context"
	"time"

	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/infra/db"
	"promo-slot-engine/internal/usecase/shared"
)

// NotificationRepository enqueues outbox rows that a delivery worker drains
// after commit. Writing the job in the same transaction as the state change
// keeps side effects atomic with the reservation.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

var _ shared.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	query, args, err := qb.
		Insert("notification_jobs").
		Columns("kind", "topic", "payload", "run_at").
		Values(kind, topic, payload, runAt).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build notification insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert notification job", err, infra.KindOfPgErr(err))
	}
	return nil
}
