package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/gymmate/internal/display"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/google/uuid"
)

// Activity is one entry of the session journal.
type Activity struct {
	Seq       int64     `json:"seq"`
	EventID   uuid.UUID `json:"event_id"`
	Kind      string    `json:"kind"`
	ProgramID *int      `json:"program_id,omitempty"`
	Summary   string    `json:"summary"`
	At        time.Time `json:"at"`
}

// InsertActivity appends an entry and returns its sequence number.
func (d *DB) InsertActivity(ctx context.Context, a Activity) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO activity (event_id, kind, program_id, summary, at) VALUES (?, ?, ?, ?, ?)`,
		a.EventID.String(), a.Kind, a.ProgramID, a.Summary, a.At.UTC())
	if err != nil {
		return 0, fmt.Errorf("inserting activity: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading activity seq: %w", err)
	}
	return seq, nil
}

// QueryActivity returns the most recent entries, newest first.
func (d *DB) QueryActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT seq, event_id, kind, program_id, summary, at
		 FROM activity
		 ORDER BY seq DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	result := []Activity{}
	for rows.Next() {
		var (
			a       Activity
			eventID string
		)
		if err := rows.Scan(&a.Seq, &eventID, &a.Kind, &a.ProgramID, &a.Summary, &a.At); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if a.EventID, err = uuid.Parse(eventID); err != nil {
			return nil, fmt.Errorf("parsing activity event id: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Journal subscribes the database to registry and profile events.
// The returned function unsubscribes both.
func (d *DB) Journal(reg *registry.Registry, prof *profile.Store, log *slog.Logger) (stop func()) {
	stopPrograms := reg.Subscribe(func(e registry.Event) {
		id := e.Program.ID
		d.record(log, Activity{
			EventID:   e.ID,
			Kind:      string(e.Kind),
			ProgramID: &id,
			Summary:   programSummary(e),
			At:        e.At,
		})
	})
	stopProfile := prof.Subscribe(func(e profile.Event) {
		d.record(log, Activity{
			EventID: e.ID,
			Kind:    string(e.Kind),
			Summary: profileSummary(e),
			At:      e.At,
		})
	})
	return func() {
		stopPrograms()
		stopProfile()
	}
}

func (d *DB) record(log *slog.Logger, a Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := d.InsertActivity(ctx, a); err != nil {
		log.Error("failed to journal activity", "kind", a.Kind, "error", err)
	}
}

func programSummary(e registry.Event) string {
	switch e.Kind {
	case registry.KindAdded:
		return "added " + display.Label(e.Program)
	case registry.KindUpdated:
		return "renamed to " + display.Label(e.Program)
	case registry.KindDeleted:
		return "deleted " + display.Label(e.Program)
	case registry.KindProgress:
		return fmt.Sprintf("%s at %d%%", display.Label(e.Program), display.Percent(e.Program.Progress))
	default:
		return string(e.Kind)
	}
}

func profileSummary(e profile.Event) string {
	if e.Kind == profile.KindRegistered {
		return "registered " + e.Profile.Name
	}
	return "profile updated for " + e.Profile.Name
}
