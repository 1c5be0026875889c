package queries

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserQueries interface {
	GetAuthorizedUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type UserViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	repo UserViewRepo
}

func NewUserQueries(repo UserViewRepo) UserQueries {
	return &userQueriesImpl{repo: repo}
}

func (q *userQueriesImpl) GetAuthorizedUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, err
	}
	return view, nil
}
