package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/notification"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/email"
	"github.com/traindesk/tcms-backend-go/internal/pkg/sse"
)

// Service persists notifications, pushes them over SSE and sends the email
// copies. It implements the leave DecisionNotifier hook; those entry points
// run post-commit and swallow failures after logging them.
type Service struct {
	repo         notification.Repository
	hub          *sse.Hub
	emailService email.EmailService
	userRepo     user.UserRepository
	studentRepo  student.StudentRepository
}

func NewService(
	repo notification.Repository,
	hub *sse.Hub,
	emailService email.EmailService,
	userRepo user.UserRepository,
	studentRepo student.StudentRepository,
) *Service {
	return &Service{
		repo:         repo,
		hub:          hub,
		emailService: emailService,
		userRepo:     userRepo,
		studentRepo:  studentRepo,
	}
}

// deliver stores the notification and pushes it to live subscribers.
func (s *Service) deliver(ctx context.Context, n *notification.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  string(n.Type),
		Data: map[string]interface{}{
			"id":      n.ID,
			"title":   n.Title,
			"message": n.Message,
			"data":    n.Data,
		},
	})
	return nil
}

// LeaveSubmitted implements the DecisionNotifier hook for new applications.
func (s *Service) LeaveSubmitted(application leave.LeaveApplication) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		slog.Error("Failed to list admins for notification", "application_id", application.ID, "error", err)
		return
	}

	typeName := ""
	if application.LeaveTypeName != nil {
		typeName = *application.LeaveTypeName
	}

	for _, admin := range admins {
		n := &notification.Notification{
			RecipientID: admin.ID,
			Type:        notification.TypeLeaveSubmitted,
			Title:       "New leave application",
			Message:     fmt.Sprintf("A %s application for %d day(s) is awaiting review", typeName, application.Days()),
			Data: map[string]interface{}{
				"application_id": application.ID,
				"student_id":     application.StudentID,
			},
		}
		if err := s.deliver(ctx, n); err != nil {
			slog.Error("Failed to deliver submission notification", "recipient_id", admin.ID, "error", err)
		}
	}
}

// LeaveDecided implements the DecisionNotifier hook for reviewed applications.
func (s *Service) LeaveDecided(application leave.LeaveApplication) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := s.studentRepo.GetByID(ctx, application.StudentID)
	if err != nil {
		slog.Error("Failed to resolve student for notification", "application_id", application.ID, "error", err)
		return
	}

	notifType := notification.TypeLeaveApproved
	if application.Status == leave.ApplicationStatusRejected {
		notifType = notification.TypeLeaveRejected
	}

	typeName := ""
	if application.LeaveTypeName != nil {
		typeName = *application.LeaveTypeName
	}

	n := &notification.Notification{
		RecipientID: st.UserID,
		SenderID:    application.ReviewedBy,
		Type:        notifType,
		Title:       fmt.Sprintf("Leave application %s", application.Status),
		Message:     fmt.Sprintf("Your %s application from %s to %s was %s", typeName, application.StartDate.Format("2006-01-02"), application.EndDate.Format("2006-01-02"), application.Status),
		Data: map[string]interface{}{
			"application_id": application.ID,
		},
	}
	if err := s.deliver(ctx, n); err != nil {
		slog.Error("Failed to deliver decision notification", "recipient_id", st.UserID, "error", err)
	}

	if st.Email == nil || st.FullName == nil {
		return
	}
	if err := s.emailService.SendLeaveDecision(
		*st.Email, *st.FullName, typeName,
		application.StartDate.Format("2006-01-02"),
		application.EndDate.Format("2006-01-02"),
		string(application.Status),
		application.ReviewerComment,
	); err != nil {
		slog.Error("Failed to send decision email", "recipient", *st.Email, "error", err)
	}
}

// List returns a page of the user's notifications.
func (s *Service) List(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	return s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
}

// UnreadCount returns the number of unread notifications for the user.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkRead marks the given notifications as read for the user.
func (s *Service) MarkRead(ctx context.Context, userID string, ids []string) error {
	return s.repo.MarkAsRead(ctx, ids, userID)
}

// MarkAllRead marks every unread notification as read for the user.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *Service) Delete(ctx context.Context, userID string, id string) error {
	return s.repo.Delete(ctx, id, userID)
}
