package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"crm-api/metrics"
	"crm-api/models"
	"crm-api/store"
)

// Mailer delivers HTML mail. config.Mailer satisfies it.
type Mailer interface {
	Configured() bool
	Send(to []string, subject, html string) error
}

type ReminderRunInput struct {
	Now       time.Time
	Lookahead time.Duration
	OwnerIDs  []uint
	DryRun    bool
}

type ReminderSummary struct {
	Scanned     int `json:"scanned"`
	Created     int `json:"created"`
	Skipped     int `json:"skipped"`
	Emailed     int `json:"emailed"`
	EmailFailed int `json:"email_failed"`
}

// ReminderJobService turns due follow-ups into reminder notifications and e-mails.
type ReminderJobService struct {
	enquiries     store.EnquiryStore
	users         store.UserStore
	notifications *NotificationService
	mailer        Mailer
	logger        *zap.Logger
}

func NewReminderJobService(enquiries store.EnquiryStore, users store.UserStore, notifications *NotificationService, mailer Mailer, logger *zap.Logger) *ReminderJobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderJobService{
		enquiries:     enquiries,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		logger:        logger,
	}
}

func reminderTitle(e *models.Enquiry) string {
	return fmt.Sprintf("Follow-up due: %s", e.EnquiryNumber)
}

// Run creates at most one reminder per enquiry per day for open enquiries whose
// follow-up date lies between the start of today and now+lookahead.
func (s *ReminderJobService) Run(ctx context.Context, input *ReminderRunInput) (*ReminderSummary, error) {
	if input == nil {
		return nil, errors.New("input is nil")
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	lookahead := input.Lookahead
	if lookahead <= 0 {
		lookahead = 24 * time.Hour
	}

	due, err := s.enquiries.ListFollowUps(ctx, store.FollowUpQuery{
		From:     startOfDay(now, now.Location()),
		Before:   now.Add(lookahead),
		OnlyOpen: true,
	})
	if err != nil {
		return nil, err
	}

	owners := map[uint]bool{}
	for _, id := range input.OwnerIDs {
		owners[id] = true
	}

	summary := &ReminderSummary{}
	for i := range due {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		e := &due[i]
		if len(owners) > 0 && !owners[e.UserID] {
			continue
		}
		summary.Scanned++

		title := reminderTitle(e)
		sent, err := s.notifications.AlreadySent(ctx, e.UserID, title, now)
		if err != nil {
			return summary, err
		}
		if sent {
			summary.Skipped++
			continue
		}
		if input.DryRun {
			s.logger.Info("dry run: would remind", zap.Uint("enquiry_id", e.EnquiryID), zap.Uint("user_id", e.UserID))
			continue
		}

		id := e.EnquiryID
		subtitle := fmt.Sprintf("%s · %s · %s", e.CustomerName, e.MobileNumber, e.FollowUpDate.In(now.Location()).Format("02 Jan 15:04"))
		if _, err := s.notifications.Push(ctx, e.UserID, models.NotificationReminder, title, subtitle, &id); err != nil {
			return summary, err
		}
		summary.Created++

		s.email(ctx, e, title, subtitle, summary)
	}

	s.logger.Info("follow-up reminders processed",
		zap.Int("scanned", summary.Scanned),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("emailed", summary.Emailed),
		zap.Int("email_failed", summary.EmailFailed))
	return summary, nil
}

func (s *ReminderJobService) email(ctx context.Context, e *models.Enquiry, title, subtitle string, summary *ReminderSummary) {
	if s.mailer == nil || !s.mailer.Configured() {
		return
	}
	owner, err := s.users.FindByID(ctx, e.UserID)
	if err != nil {
		s.logger.Warn("reminder owner lookup failed", zap.Uint("user_id", e.UserID), zap.Error(err))
		return
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>%s</p><p>%s</p>",
		html.EscapeString(owner.Name), html.EscapeString(title), html.EscapeString(subtitle))
	if err := s.mailer.Send([]string{owner.Email}, title, body); err != nil {
		summary.EmailFailed++
		metrics.ReminderEmails.WithLabelValues("error").Inc()
		s.logger.Error("reminder e-mail failed", zap.Uint("enquiry_id", e.EnquiryID), zap.Error(err))

		id := e.EnquiryID
		if _, perr := s.notifications.Push(ctx, e.UserID, models.NotificationError,
			"Reminder e-mail failed", fmt.Sprintf("Could not e-mail the reminder for %s", e.EnquiryNumber), &id); perr != nil {
			s.logger.Error("failed to record e-mail failure", zap.Error(perr))
		}
		return
	}
	summary.Emailed++
	metrics.ReminderEmails.WithLabelValues("ok").Inc()
}
