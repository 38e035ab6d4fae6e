// Package inspect decodes captured multipart bodies into structured reports.
//
// A [Service] parses the body with the boundary named by its Content-Type,
// decodes every part by media type, logs parts that could not be delimited
// and, when a store is configured, archives the inspection together with
// every decodable part body.
//
// # Processing Steps
//
//  1. Size limit is enforced on the raw body
//  2. Content-Type is parsed and the boundary extracted
//  3. Parts are split and each part decoded (JSON, XML, form, text, nested multipart)
//  4. Part bodies and the inspection record are stored
//  5. A [Report] is returned
package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sirosfoundation/go-mimeparts/internal/storage"
	"github.com/sirosfoundation/go-mimeparts/pkg/body"
	"github.com/sirosfoundation/go-mimeparts/pkg/mime"
)

// ErrBodyTooLarge is returned when a body exceeds the configured limit
var ErrBodyTooLarge = errors.New("body exceeds size limit")

// Store archives inspections and their parts
type Store interface {
	CreateInspection(ctx context.Context, inspection *storage.Inspection) error
	StorePart(ctx context.Context, inspectionID string, part *storage.PartData) (string, error)
	DeletePart(ctx context.Context, id string) error
}

// Config holds service configuration
type Config struct {
	// Store is optional; without it nothing is archived
	Store                Store
	Logger               *slog.Logger
	MaxBodyBytes         int64
	MaxDecompressedBytes int64
	MaxDepth             int
}

// Service inspects multipart bodies
type Service struct {
	store        Store
	decoder      *body.Decoder
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewService creates a new inspection service
func NewService(cfg *Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var opts []body.Option
	if cfg.MaxDepth > 0 {
		opts = append(opts, body.WithMaxDepth(cfg.MaxDepth))
	}
	if cfg.MaxDecompressedBytes > 0 {
		opts = append(opts, body.WithMaxDecompressedSize(cfg.MaxDecompressedBytes))
	}

	return &Service{
		store:        cfg.Store,
		decoder:      body.NewDecoder(opts...),
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger,
	}
}

// Inspect parses data as a multipart body described by contentType.
//
// When archiving fails, parts already stored for this inspection are deleted
// before the error is returned.
func (s *Service) Inspect(ctx context.Context, contentType string, data []byte) (*Report, error) {
	if s.maxBodyBytes > 0 && int64(len(data)) > s.maxBodyBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrBodyTooLarge, len(data), s.maxBodyBytes)
	}

	msg, err := mime.Parse(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("parsing multipart body: %w", err)
	}

	report := &Report{
		ContentType: msg.MediaType.Type,
		Boundary:    msg.Boundary,
		Size:        len(data),
		Parts:       make([]PartReport, 0, len(msg.Parts)),
	}
	if s.store != nil {
		report.ID = uuid.NewString()
	}

	log := s.logger.With(
		slog.String("content_type", report.ContentType),
		slog.String("boundary", report.Boundary))
	if report.ID != "" {
		log = log.With(slog.String("inspection_id", report.ID))
	}

	for i, p := range msg.Parts {
		pr := s.inspectPart(log, i, p)
		if pr.Broken {
			report.BrokenParts++
		}

		if s.store != nil && !pr.Broken {
			id, err := s.store.StorePart(ctx, report.ID, partData(i, p))
			if err != nil {
				s.discardParts(ctx, log, report.Parts)
				return nil, fmt.Errorf("storing part %d: %w", i, err)
			}
			pr.StoredID = id
		}

		report.Parts = append(report.Parts, pr)
	}

	if s.store != nil {
		record := &storage.Inspection{
			ID:          report.ID,
			ContentType: report.ContentType,
			Boundary:    report.Boundary,
			Size:        report.Size,
			BrokenParts: report.BrokenParts,
		}
		for _, pr := range report.Parts {
			if pr.StoredID != "" {
				record.PartIDs = append(record.PartIDs, pr.StoredID)
			}
		}
		if err := s.store.CreateInspection(ctx, record); err != nil {
			s.discardParts(ctx, log, report.Parts)
			return nil, fmt.Errorf("storing inspection: %w", err)
		}
	}

	log.Info("body inspected",
		slog.Int("size", report.Size),
		slog.Int("parts", len(report.Parts)),
		slog.Int("broken_parts", report.BrokenParts))

	return report, nil
}

// discardParts removes archived parts of an inspection that could not be completed
func (s *Service) discardParts(ctx context.Context, log *slog.Logger, parts []PartReport) {
	for _, pr := range parts {
		if pr.StoredID == "" {
			continue
		}
		if err := s.store.DeletePart(ctx, pr.StoredID); err != nil {
			log.Warn("orphaned part not deleted",
				slog.String("part_id", pr.StoredID),
				slog.String("error", err.Error()))
		}
	}
}

func (s *Service) inspectPart(log *slog.Logger, index int, p mime.Part) PartReport {
	if p.Broken() {
		log.Warn("broken part",
			slog.Int("index", index),
			slog.String("part_content_type", p.ContentType().Type))
		return PartReport{
			Index:       index,
			Headers:     p.Headers.Map(),
			ContentType: p.ContentType().Type,
			Disposition: p.ContentDisposition().Type,
			Name:        p.Name(),
			Filename:    p.Filename(),
			ContentID:   mime.GetContentIDWithoutBrackets(p.ContentID()),
			Broken:      true,
			Error:       body.ErrBrokenPart.Error(),
		}
	}

	content, err := s.decoder.DecodePart(p)
	if err != nil {
		log.Warn("part not decoded",
			slog.Int("index", index),
			slog.String("error", err.Error()))
		return PartReport{
			Index:       index,
			Headers:     p.Headers.Map(),
			ContentType: p.ContentType().Type,
			Disposition: p.ContentDisposition().Type,
			Name:        p.Name(),
			Filename:    p.Filename(),
			ContentID:   mime.GetContentIDWithoutBrackets(p.ContentID()),
			Size:        len(p.Body),
			Error:       err.Error(),
		}
	}

	log.Debug("part decoded",
		slog.Int("index", index),
		slog.String("kind", content.Kind.String()),
		slog.Int("size", len(content.Raw)))

	pr := summarize(content)
	pr.Index = index
	pr.ContentID = mime.GetContentIDWithoutBrackets(p.ContentID())
	return pr
}

func partData(index int, p mime.Part) *storage.PartData {
	return &storage.PartData{
		Index:       index,
		ContentType: p.ContentType().String(),
		Disposition: p.ContentDisposition().String(),
		ContentID:   mime.GetContentIDWithoutBrackets(p.ContentID()),
		Headers:     p.Headers.Map(),
		Data:        p.Body,
	}
}
