package dto

import (
	"time"

	"github.com/minilms/backend/internal/model"
)

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationResponses(notifications []model.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, ToNotificationResponse(&notifications[i]))
	}
	return out
}
