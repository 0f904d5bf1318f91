package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/newsletter"
)

// WeeklyDigestJob emails active newsletter subscribers a summary of the
// suppliers that went live during the past week. Weeks with no new
// suppliers send nothing.
type WeeklyDigestJob struct {
	Pool        *pgxpool.Pool
	Subscribers newsletter.Repository
	Outbox      mailer.Outbox
	Logger      *slog.Logger
	clock       func() time.Time
}

// NewWeeklyDigestJob initialises the digest handler.
func NewWeeklyDigestJob(pool *pgxpool.Pool, subscribers newsletter.Repository, outbox mailer.Outbox, logger *slog.Logger) *WeeklyDigestJob {
	return &WeeklyDigestJob{
		Pool:        pool,
		Subscribers: subscribers,
		Outbox:      outbox,
		Logger:      logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type digestEntry struct {
	Name     string
	Category string
	City     string
}

// Handle executes the digest logic.
func (j *WeeklyDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("weekly digest: handler not configured")
	}
	since := j.clock().AddDate(0, 0, -7)

	entries, err := j.newSuppliers(ctx, since)
	if err != nil {
		j.Logger.Error("weekly digest query", slog.Any("error", err))
		return err
	}
	if len(entries) == 0 {
		j.Logger.Info("weekly digest: no new suppliers, skipping")
		return nil
	}

	subs, err := j.Subscribers.ListActive(ctx)
	if err != nil {
		return err
	}
	body := digestBody(entries)
	sent := 0
	for _, sub := range subs {
		err := j.Outbox.Enqueue(ctx, mailer.Email{
			To:      sub.Email,
			Subject: "New on NaijaFind this week",
			Body:    body,
		})
		if err != nil {
			j.Logger.Error("enqueue digest", slog.String("to", sub.Email), slog.Any("error", err))
			continue
		}
		sent++
	}
	j.Logger.Info("weekly digest sent",
		slog.Int("suppliers", len(entries)),
		slog.Int("recipients", sent),
	)
	return nil
}

func (j *WeeklyDigestJob) newSuppliers(ctx context.Context, since time.Time) ([]digestEntry, error) {
	rows, err := j.Pool.Query(ctx, `
		SELECT business_name, category, city
		FROM suppliers
		WHERE approved AND updated_at >= $1
		ORDER BY updated_at DESC
		LIMIT 25`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []digestEntry
	for rows.Next() {
		var e digestEntry
		if err := rows.Scan(&e.Name, &e.Category, &e.City); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func digestBody(entries []digestEntry) string {
	var b strings.Builder
	b.WriteString("Suppliers that joined NaijaFind this week:\n\n")
	for _, e := range entries {
		line := "- " + e.Name
		if e.Category != "" {
			line += fmt.Sprintf(" (%s)", e.Category)
		}
		if e.City != "" {
			line += ", " + e.City
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nBrowse the full directory at https://naijafind.ng\n")
	return b.String()
}
