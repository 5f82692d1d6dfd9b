package documents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medilink-hq/medilink-api/logger"
	"github.com/medilink-hq/medilink-api/models"
	"github.com/medilink-hq/medilink-api/storage"
)

// URLWriter persists the single URL column a job owns.
type URLWriter interface {
	WriteDocumentURL(appointmentID uint, column, url string) error
}

// Pipeline runs the three document jobs. Each job shares one shape: snapshot,
// render, upload at a deterministic path, resolve a distribution URL, write
// the URL back. Jobs fail independently and never reach the booking response.
type Pipeline struct {
	Renderer Renderer
	Store    storage.Store
	Writer   URLWriter
}

func NewPipeline(renderer Renderer, store storage.Store, writer URLWriter) *Pipeline {
	return &Pipeline{Renderer: renderer, Store: store, Writer: writer}
}

// Generate runs one job to completion and returns the distribution URL. A
// repeat call re-renders and overwrites the same object path, so regeneration
// is idempotent.
func (p *Pipeline) Generate(ctx context.Context, appt *models.Appointment, kind Kind) (string, error) {
	snap := BuildSnapshot(kind, appt)

	data, err := p.Renderer.Render(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}

	objectPath := kind.ObjectPath(appt.ID)
	if err := p.Store.Upload(ctx, objectPath, data, "application/pdf"); err != nil {
		return "", fmt.Errorf("upload %s: %w", kind, err)
	}

	url, err := p.Store.ResolveURL(ctx, objectPath)
	if err != nil {
		return "", fmt.Errorf("resolve url %s: %w", kind, err)
	}

	if err := p.Writer.WriteDocumentURL(appt.ID, kind.Column(), url); err != nil {
		return "", fmt.Errorf("write back %s: %w", kind, err)
	}
	return url, nil
}

// GenerateBestEffort is the booking-path wrapper: any error or panic is
// caught and logged, the URL column stays empty for a later on-demand
// regenerate, and the caller's response is unaffected.
func (p *Pipeline) GenerateBestEffort(ctx context.Context, appt *models.Appointment, kind Kind) (url string) {
	defer func() {
		if r := recover(); r != nil {
			logger.L.Error("document job panicked",
				zap.Uint("appointment_id", appt.ID),
				zap.String("kind", string(kind)),
				zap.Any("panic", r))
			url = ""
		}
	}()

	url, err := p.Generate(ctx, appt, kind)
	if err != nil {
		logger.L.Error("document job failed",
			zap.Uint("appointment_id", appt.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}
	return url
}
