package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifetrackhq/lifetrack/internal/model"
	"github.com/lifetrackhq/lifetrack/internal/storage"
)

// BackupSnapshot is the JSON document uploaded to the backup store.
type BackupSnapshot struct {
	ExportedAt time.Time           `json:"exported_at"`
	Goals      []*model.Goal       `json:"goals"`
	Records    []*model.GoalRecord `json:"records"`
}

// BackupService uploads full JSON snapshots of the goal data to an
// S3-compatible object store.
type BackupService struct {
	goals   *GoalService
	storage storage.Storage
	prefix  string
}

func NewBackupService(goals *GoalService, store storage.Storage, prefix string) *BackupService {
	return &BackupService{
		goals:   goals,
		storage: store,
		prefix:  prefix,
	}
}

// Run takes a snapshot and uploads it, returning the object key.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	goals, records, err := s.goals.Snapshot()
	if err != nil {
		return "", fmt.Errorf("failed to snapshot goals: %w", err)
	}

	snapshot := BackupSnapshot{
		ExportedAt: time.Now().UTC(),
		Goals:      goals,
		Records:    records,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s/lifetrack-%s.json", s.prefix, snapshot.ExportedAt.Format("20060102T150405Z"))

	err = s.storage.Save(ctx, key, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	slog.Info("backup uploaded", "key", key, "goals", len(goals), "records", len(records))
	return key, nil
}

// DownloadURL returns a temporary link to a previously uploaded backup.
func (s *BackupService) DownloadURL(ctx context.Context, key string) (string, error) {
	return s.storage.PresignedURL(ctx, key, 1*time.Hour)
}
