package readstore

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/infra/db"
	"exechire/internal/pkg/pgconv"
	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

func (r *NotificationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.NotificationView, error) {
	const query = `
		SELECT id, user_id, kind, title, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	views := []*queries.NotificationView{}
	for rows.Next() {
		var view queries.NotificationView
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(
			&view.ID, &view.UserID, &view.Kind, &view.Title,
			&view.Message, &view.Read, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification view", err)
		}
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification views", err)
	}

	return views, nil
}
