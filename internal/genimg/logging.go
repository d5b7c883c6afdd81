package genimg

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that records every generation call.
// The TUI owns stdout, so the logger is expected to write to a file.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps a Provider with structured logging.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, subjectName string) (*Image, error) {
	start := time.Now()

	img, err := l.inner.Generate(ctx, subjectName)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.String("subject", subjectName),
		zap.Duration("latency", time.Since(start)),
	}

	if err != nil {
		l.logger.Warn("image generation failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	l.logger.Info("image generated", append(fields,
		zap.String("mime_type", img.MIMEType),
		zap.Int("bytes", len(img.Data)),
	)...)
	return img, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
