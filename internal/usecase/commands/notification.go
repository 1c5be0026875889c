package commands

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/pkg/errs"
	"exechire/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errs.New("notification not found")

type NotificationCommands interface {
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
}

type notificationCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationCommands(uow shared.UnitOfWork) NotificationCommands {
	return &notificationCommandsImpl{uow: uow}
}

func (n *notificationCommandsImpl) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	err := n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().MarkRead(ctx, tx.DB(), notificationID, userID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrNotificationNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
