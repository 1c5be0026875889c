package response

import (
	"time"

	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromNotificationViews(views []*queries.NotificationView) []*NotificationResponse {
	resps := make([]*NotificationResponse, len(views))
	for i, view := range views {
		var resp NotificationResponse
		_ = copier.Copy(&resp, view)
		resps[i] = &resp
	}
	return resps
}
