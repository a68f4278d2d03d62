// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"monchai-insurance/models"
	"monchai-insurance/utils"
)

const (
	reminderLockKey = "lock:renewal-reminders"
	reminderLockTTL = 10 * time.Minute
)

var ErrReminderRunning = errors.New("reminder run already in progress")

// SMSSender delivers one text message and returns the provider message id.
type SMSSender interface {
	Send(to, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// RunLock guards a reminder run; release is called once the run ends.
type RunLock func(ctx context.Context) (release func(), err error)

// RedisRunLock allows one reminder run at a time across every instance sharing the redis.
func RedisRunLock(locker *redislock.Client, logger *logrus.Logger) RunLock {
	return func(ctx context.Context) (func(), error) {
		lock, err := locker.Obtain(ctx, reminderLockKey, reminderLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrReminderRunning
		}
		if err != nil {
			return nil, fmt.Errorf("obtain reminder lock: %w", err)
		}
		return func() {
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				logger.WithError(err).Warn("release reminder lock")
			}
		}, nil
	}
}

type ReminderSummary struct {
	RunID    string
	Due      int
	Sent     int
	Failed   int
	Skipped  int
	Reminded []string
}

type ReminderService struct {
	customers  *CustomerService
	journal    *Journal
	sender     SMSSender
	lock       RunLock
	windowDays int
	log        *logrus.Logger
	cron       *cron.Cron
}

// NewReminderService builds the daily job. A nil sender only reconciles; a
// nil lock runs unguarded.
func NewReminderService(customers *CustomerService, journal *Journal, sender SMSSender, lock RunLock, windowDays int, logger *logrus.Logger) *ReminderService {
	if windowDays <= 0 {
		windowDays = AlertWindowDays
	}
	return &ReminderService{
		customers:  customers,
		journal:    journal,
		sender:     sender,
		lock:       lock,
		windowDays: windowDays,
		log:        logger,
	}
}

func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New(cron.WithLocation(s.customers.Location()))
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.SendDailyReminders(context.Background()); err != nil && !errors.Is(err, ErrReminderRunning) {
			s.log.WithError(err).Error("daily reminder run failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.log.WithField("schedule", spec).Info("reminder scheduler started")
	return nil
}

// Stop halts the scheduler and returns a context done when a running job finishes.
func (s *ReminderService) Stop() context.Context {
	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.cron.Stop()
}

// SendDailyReminders reconciles the due list and texts each due customer about
// their nearest expiry once per expiry date.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (ReminderSummary, error) {
	if s.lock != nil {
		release, err := s.lock(ctx)
		if err != nil {
			if errors.Is(err, ErrReminderRunning) {
				s.log.Info("reminder run skipped, another instance holds the lock")
			}
			return ReminderSummary{}, err
		}
		defer release()
	}

	s.log.Info("Starting daily reminder processing...")
	report := s.customers.Due(ctx, s.windowDays)
	summary := ReminderSummary{RunID: report.RunID, Due: len(report.Items)}

	if s.sender == nil {
		s.log.WithField("due", summary.Due).Info("sms disabled, reconciliation only")
		return summary, nil
	}

	now := s.customers.Now()
	for _, item := range report.Items {
		s.remind(ctx, item, now, &summary)
	}

	s.log.WithFields(logrus.Fields{
		"runId":   summary.RunID,
		"due":     summary.Due,
		"sent":    summary.Sent,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	}).Info("Daily reminder processing completed")
	return summary, nil
}

func (s *ReminderService) remind(ctx context.Context, item DueItem, now time.Time, summary *ReminderSummary) {
	c := item.Customer
	field := item.Days.MinField()
	days := item.Days.For(field)
	if c.Phone == "" || field == "" || days == nil {
		summary.Skipped++
		return
	}

	expiry := utils.ToInputDate(field.Value(c), now.Location())
	if s.journal.WasReminded(ctx, c.LicensePlate, field, expiry) {
		summary.Skipped++
		return
	}

	to, err := utils.ToE164(c.Phone)
	if err != nil {
		s.log.WithFields(logrus.Fields{"rowNumber": c.RowNumber, "phone": c.Phone}).WithError(err).Warn("phone not dialable")
		summary.Skipped++
		return
	}

	message := ReminderMessage(c, field, *days, now.Location())
	entry := &models.ReminderLog{
		RowNumber:    c.RowNumber,
		LicensePlate: c.LicensePlate,
		ExpiryField:  string(field),
		ExpiryDate:   expiry,
		Phone:        to,
		Message:      message,
		Status:       "sent",
		Channel:      "sms",
		SentAt:       now,
	}

	sid, err := s.sender.Send(to, message)
	if err != nil {
		s.log.WithFields(logrus.Fields{"rowNumber": c.RowNumber, "to": to}).WithError(err).Warn("Failed to send reminder")
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
		summary.Failed++
	} else {
		s.log.WithFields(logrus.Fields{"rowNumber": c.RowNumber, "to": to, "sid": sid}).Info("reminder sent")
		summary.Sent++
		summary.Reminded = append(summary.Reminded, c.LicensePlate)
	}
	s.journal.RecordReminder(ctx, entry)
}

// ReminderMessage is the SMS body for one expiry of c.
func ReminderMessage(c models.Customer, field ExpiryField, days int, loc *time.Location) string {
	name := c.CustomerName
	if name == "" {
		name = models.DefaultCustomerName
	}
	date := utils.FormatThaiDate(field.Value(c), loc)
	switch {
	case days < 0:
		return fmt.Sprintf("เรียนคุณ%s %sของรถทะเบียน %s เลยกำหนดมาแล้ว %d วัน (%s) กรุณาติดต่อเพื่อต่ออายุ", name, field.Label(), c.LicensePlate, -days, date)
	case days == 0:
		return fmt.Sprintf("เรียนคุณ%s %sของรถทะเบียน %s ครบกำหนดวันนี้ (%s) กรุณาติดต่อเพื่อต่ออายุ", name, field.Label(), c.LicensePlate, date)
	default:
		return fmt.Sprintf("เรียนคุณ%s %sของรถทะเบียน %s จะครบกำหนดในอีก %d วัน (%s) กรุณาติดต่อเพื่อต่ออายุ", name, field.Label(), c.LicensePlate, days, date)
	}
}
