// Package notificationrepo maps notifications to the notifications table.
package notificationrepo

import (
	"time"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
)

// NotificationDTO is one row of notifications. A NULL target_user_id marks a broadcast.
type NotificationDTO struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	TargetUserID *string   `gorm:"size:64;index"`
	Type         string    `gorm:"size:32;not null"`
	Title        string    `gorm:"not null"`
	Message      string    `gorm:"type:text"`
	Read         bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"index;autoCreateTime:false"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	var target *string
	if !n.IsBroadcast() {
		t := n.TargetUserID()
		target = &t
	}

	return NotificationDTO{
		ID:           n.ID().String(),
		TargetUserID: target,
		Type:         n.Kind().String(),
		Title:        n.Title(),
		Message:      n.Message(),
		Read:         n.IsRead(),
		CreatedAt:    n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var target string
	if dto.TargetUserID != nil {
		target = *dto.TargetUserID
	}

	return notification.Restore(id, target, event.ParseKind(dto.Type), dto.Title, dto.Message, dto.Read, dto.CreatedAt.UTC())
}
