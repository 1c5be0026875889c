package repository

import (
	"context"

	"exechire/internal/domain/notification"
	"exechire/internal/infra"
	"exechire/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, n *notification.Notification) (uuid.UUID, error) {
	const query = `
		INSERT INTO notifications (id, user_id, kind, title, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		n.ID(), n.UserID(), string(n.Kind()), n.Title(), n.Message(), n.Read(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create notification", err)
	}

	return id, nil
}

// MarkRead is scoped to the owning user so one user cannot touch another's
// notifications. Marking an already-read row is a no-op, not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, tx db.DBTX, notificationID, userID uuid.UUID) error {
	const query = `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	tag, err := tx.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", nil, infra.KindNotFound)
	}

	return nil
}
