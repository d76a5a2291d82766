package notification

import (
	"context"
	"fmt"

	notificationRepo "orgflow/database/repository/notification"
	"orgflow/models"
	"orgflow/services/mailer"
	"orgflow/services/realtime"
	"orgflow/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Mailer   mailer.MailerService
	Realtime realtime.Notifier
}

// SendApprovalRequest persists the approver's pending notification, then
// fires the realtime and email channels. Channel failures are recorded in
// the report and logged; only a failed notification insert is an error. The
// business record has already transitioned to pending by the time this runs,
// and is not rolled back on any failure here.
func (s *DefaultNotificationService) SendApprovalRequest(ctx context.Context, req ApprovalRequest) (*DeliveryReport, error) {
	logger := utils.GetLogger()
	route := RouteFor(req.RecordType)

	message := fmt.Sprintf("%s has submitted a %s for your approval", req.Requester.Name, route.Noun)
	if req.CustomMessage != "" {
		message = req.CustomMessage
	}
	link := req.Link
	if link == "" {
		link = route.DefaultLink
	}

	id, err := s.Repo.Create(ctx, models.Notification{
		UserID:        req.Approver.ID,
		Type:          route.NotificationType,
		Title:         route.Title,
		Message:       message,
		Link:          link,
		ReferenceType: req.RecordType,
		ReferenceID:   req.RecordID,
		Status:        models.NotificationStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist approval notification: %w", err)
	}

	report := &DeliveryReport{NotificationID: id}

	// Best-effort realtime push.
	if s.Realtime != nil {
		pushData := map[string]string{
			"type":          route.NotificationType,
			"referenceType": req.RecordType,
			"referenceId":   req.RecordID,
			"link":          link,
		}
		if err := s.Realtime.Send(ctx, req.Approver.ID, route.Title, message, pushData); err != nil {
			logger.Warn("realtime push failed",
				zap.String("approverId", req.Approver.ID),
				zap.String("recordType", req.RecordType),
				zap.Error(err),
			)
			report.Realtime = ChannelResult{Status: ChannelFailed, Err: err}
		} else {
			report.Realtime = ChannelResult{Status: ChannelDelivered}
		}
	} else {
		report.Realtime = ChannelResult{Status: ChannelSkipped}
	}

	// Best-effort email.
	if s.Mailer != nil {
		res, err := s.Mailer.SendApprovalEmail(ctx, mailer.ApprovalEmail{
			RecordType: req.RecordType,
			RecordID:   req.RecordID,
			Subject:    route.Subject(req.Details),
			Title:      route.Title,
			Requester:  req.Requester,
			Approver:   req.Approver,
			Details:    req.Details,
			Note:       req.Note,
		})
		switch {
		case err != nil:
			logger.Warn("approval email failed",
				zap.String("approverEmail", req.Approver.Email),
				zap.String("recordType", req.RecordType),
				zap.Error(err),
			)
			report.Email = ChannelResult{Status: ChannelFailed, Err: err}
		case res.Status == mailer.StatusSkipped:
			report.Email = ChannelResult{Status: ChannelSkipped}
		default:
			report.Email = ChannelResult{Status: ChannelDelivered}
		}
	} else {
		report.Email = ChannelResult{Status: ChannelSkipped}
	}

	return report, nil
}

// SendApprovalOutcome notifies the requester after a terminal transition.
// Only the notification store and the realtime channel fire on this leg.
func (s *DefaultNotificationService) SendApprovalOutcome(ctx context.Context, out ApprovalOutcome) (*DeliveryReport, error) {
	logger := utils.GetLogger()
	route := RouteFor(out.RecordType)

	title := fmt.Sprintf("%s %s", route.Title, titleOutcome(out.Outcome))
	message := fmt.Sprintf("Your %s was %s by %s", route.Noun, out.Outcome, out.Approver.Name)
	if out.Outcome == models.StatusRejected && out.Reason != "" {
		message += ": " + out.Reason
	}

	id, err := s.Repo.Create(ctx, models.Notification{
		UserID:        out.Requester.ID,
		Type:          fmt.Sprintf("%s_%s", out.RecordType, out.Outcome),
		Title:         title,
		Message:       message,
		Link:          route.DefaultLink,
		ReferenceType: out.RecordType,
		ReferenceID:   out.RecordID,
		Status:        models.NotificationStatusActioned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist outcome notification: %w", err)
	}

	// The approver's pending notifications point at an already-decided
	// record now; flip them so they stop showing as actionable.
	if err := s.Repo.MarkActionedByReference(ctx, out.RecordType, out.RecordID); err != nil {
		logger.Warn("failed to action stale approval notifications", zap.Error(err))
	}

	report := &DeliveryReport{NotificationID: id}

	if s.Realtime != nil {
		pushData := map[string]string{
			"type":          fmt.Sprintf("%s_%s", out.RecordType, out.Outcome),
			"referenceType": out.RecordType,
			"referenceId":   out.RecordID,
		}
		if err := s.Realtime.Send(ctx, out.Requester.ID, title, message, pushData); err != nil {
			logger.Warn("realtime outcome push failed",
				zap.String("requesterId", out.Requester.ID),
				zap.Error(err),
			)
			report.Realtime = ChannelResult{Status: ChannelFailed, Err: err}
		} else {
			report.Realtime = ChannelResult{Status: ChannelDelivered}
		}
	} else {
		report.Realtime = ChannelResult{Status: ChannelSkipped}
	}
	report.Email = ChannelResult{Status: ChannelSkipped}

	return report, nil
}

func titleOutcome(outcome string) string {
	switch outcome {
	case models.StatusApproved:
		return "Approved"
	case models.StatusRejected:
		return "Rejected"
	}
	return outcome
}

// List returns the recipient's notifications, newest first.
func (s *DefaultNotificationService) List(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID, limit)
}

// UnreadCount counts the recipient's unread notifications.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.UnreadCount(ctx, userID)
}

// MarkRead flips isRead on one of the recipient's notifications.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

// MarkAllRead flips isRead on all of the recipient's notifications.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.Repo.MarkAllRead(ctx, userID)
}

// MarkActioned transitions one of the recipient's notifications to actioned.
func (s *DefaultNotificationService) MarkActioned(ctx context.Context, id, userID string) error {
	return s.Repo.MarkActioned(ctx, id, userID)
}
