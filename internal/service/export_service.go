package service

import (
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportResult points at an uploaded log snapshot.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// ExportService writes log snapshots to object storage.
type ExportService interface {
	Enabled() bool
	ExportLog(ctx context.Context, userID string, q LogQuery) (*ExportResult, error)
}

type exportService struct {
	exercises ExerciseService
	files     storage.FileStorage
	urlExpiry time.Duration
}

// NewExportService creates an export service. A nil FileStorage disables it.
func NewExportService(exercises ExerciseService, files storage.FileStorage, urlExpiry time.Duration) ExportService {
	return &exportService{exercises: exercises, files: files, urlExpiry: urlExpiry}
}

func (s *exportService) Enabled() bool {
	return s.files != nil
}

// ExportLog builds the same log GetLog returns, uploads it as JSON and
// returns a presigned download URL for it.
func (s *exportService) ExportLog(ctx context.Context, userID string, q LogQuery) (*ExportResult, error) {
	if !s.Enabled() {
		return nil, ErrExportDisabled
	}
	log, err := s.exercises.GetLog(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("encode log: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", log.UserID, uuid.NewString())
	if err := s.files.PutObject(ctx, key, "application/json", body); err != nil {
		metrics.LogExports.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("upload log export: %w", err)
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		metrics.LogExports.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("presign log export: %w", err)
	}

	metrics.LogExports.WithLabelValues("success").Inc()
	logger.Infof("exported %d log entries for user %s to %s", log.Count, log.UserID, key)
	return &ExportResult{Key: key, URL: url, Count: log.Count}, nil
}
