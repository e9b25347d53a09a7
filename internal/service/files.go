package service

import (
	"context"
	"errors"
	"os"

	"github.com/nlecomte/filegate/internal/logging"
	"github.com/nlecomte/filegate/internal/metrics"
	"github.com/nlecomte/filegate/internal/safepath"
)

type FileService struct {
	Root    string
	Metrics *metrics.Metrics
}

// Fetch resolves name inside the configured root and returns the file bytes.
// Callers only ever see the safepath sentinel errors, never raw fs errors.
func (s *FileService) Fetch(ctx context.Context, name string) ([]byte, error) {
	l := logging.FromContext(ctx).With("svc", "files.fetch")

	resolved, err := safepath.Resolve(s.Root, name)
	if err != nil {
		switch {
		case errors.Is(err, safepath.ErrInvalidName):
			s.Metrics.FileDownloads.WithLabelValues(metrics.StatusDenied).Inc()
			l.Warn("download denied", "reason", "invalid name")
		case errors.Is(err, safepath.ErrOutsideRoot):
			s.Metrics.FileDownloads.WithLabelValues(metrics.StatusDenied).Inc()
			l.Warn("download denied", "reason", "outside root")
		default:
			s.Metrics.FileDownloads.WithLabelValues(metrics.StatusNotFound).Inc()
		}
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		s.Metrics.FileDownloads.WithLabelValues(metrics.StatusNotFound).Inc()
		return nil, safepath.ErrNotFound
	}

	s.Metrics.FileDownloads.WithLabelValues(metrics.StatusSuccess).Inc()
	return data, nil
}
