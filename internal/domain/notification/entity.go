package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveSubmitted  NotificationType = "leave_submitted"
	TypeLeaveApproved   NotificationType = "leave_approved"
	TypeLeaveRejected   NotificationType = "leave_rejected"
	TypeAttendanceSaved NotificationType = "attendance_saved"
	TypeStudentEnrolled NotificationType = "student_enrolled"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeLeaveSubmitted,
		TypeLeaveApproved,
		TypeLeaveRejected,
		TypeAttendanceSaved,
		TypeStudentEnrolled,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
