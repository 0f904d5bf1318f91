package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/olufinja/naijafind/internal/mailer"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeWeeklyDigest is the task type for the weekly newsletter digest.
	TaskTypeWeeklyDigest = "newsletter:weekly_digest"

	// emailMaxRetry bounds delivery attempts before a task lands in the
	// archive for manual inspection.
	emailMaxRetry = 5
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data, asynq.MaxRetry(emailMaxRetry)), nil
}

// NewWeeklyDigestTask constructs the scheduler task for the weekly digest.
func NewWeeklyDigestTask() *asynq.Task {
	return asynq.NewTask(TaskTypeWeeklyDigest, nil, asynq.MaxRetry(2))
}

// NewSendEmailHandler returns the handler for TaskTypeSendEmail tasks.
// Returned errors trigger Asynq's retry with backoff; malformed payloads
// skip retry.
func NewSendEmailHandler(sender mailer.Sender, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		err := sender.Send(ctx, mailer.Email{
			To:      payload.To,
			Subject: payload.Subject,
			Body:    payload.Body,
		})
		if err != nil {
			logger.Error("send email", slog.String("to", payload.To), slog.Any("error", err))
			return err
		}
		logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
		return nil
	}
}
