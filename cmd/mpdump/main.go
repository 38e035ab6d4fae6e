// Command mpdump decodes a captured multipart body and prints a JSON report.
//
// Usage:
//
//	mpdump -content-type 'multipart/form-data; boundary=xyz' -in body.bin
//	mpdump -config mpdump.yaml -content-type '...' < body.bin
//	mpdump -config mpdump.yaml -show <inspection-id>
//	mpdump -config mpdump.yaml -list 10
//
// When the configuration enables MongoDB storage, every inspection and its
// part bodies are archived and can be listed or shown later.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirosfoundation/go-mimeparts/internal/config"
	"github.com/sirosfoundation/go-mimeparts/internal/inspect"
	"github.com/sirosfoundation/go-mimeparts/internal/storage"
	"github.com/sirosfoundation/go-mimeparts/internal/storage/mongodb"
)

var (
	configPath  = flag.String("config", "", "Path to YAML configuration file")
	contentType = flag.String("content-type", "", "Content-Type header of the captured body")
	inputPath   = flag.String("in", "", "Body file (default: stdin)")
	showID      = flag.String("show", "", "Print an archived inspection instead of decoding")
	listCount   = flag.Int("list", 0, "Print the most recent archived inspections")
	timeout     = flag.Duration("timeout", 30*time.Second, "Overall timeout")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mpdump: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var store storage.Store
	if cfg.Storage.MongoDB.Enabled {
		s, err := mongodb.NewStore(ctx, &mongodb.Config{
			URI:            cfg.Storage.MongoDB.URI,
			Database:       cfg.Storage.MongoDB.Database,
			GridFSBucket:   cfg.Storage.MongoDB.GridFS.BucketName,
			ChunkSizeBytes: cfg.Storage.MongoDB.GridFS.ChunkSizeBytes,
		})
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer s.Close(context.Background())
		store = s
		logger.Debug("storage connected", slog.String("database", cfg.Storage.MongoDB.Database))
	}

	switch {
	case *showID != "":
		if store == nil {
			return errors.New("-show requires storage.mongodb.enabled")
		}
		inspection, err := store.GetInspection(ctx, *showID)
		if err != nil {
			return fmt.Errorf("loading inspection %s: %w", *showID, err)
		}
		return writeJSON(os.Stdout, inspection)

	case *listCount > 0:
		if store == nil {
			return errors.New("-list requires storage.mongodb.enabled")
		}
		inspections, err := store.ListInspections(ctx, &storage.InspectionFilter{Limit: *listCount})
		if err != nil {
			return fmt.Errorf("listing inspections: %w", err)
		}
		return writeJSON(os.Stdout, inspections)
	}

	if *contentType == "" {
		return errors.New("-content-type is required")
	}

	data, err := readInput(*inputPath, cfg.Limits.MaxBodyBytes)
	if err != nil {
		return err
	}

	svcCfg := &inspect.Config{
		Logger:               logger,
		MaxBodyBytes:         cfg.Limits.MaxBodyBytes,
		MaxDecompressedBytes: cfg.Limits.MaxDecompressedBytes,
		MaxDepth:             cfg.Limits.MaxDepth,
	}
	if store != nil {
		svcCfg.Store = store
	}

	report, err := inspect.NewService(svcCfg).Inspect(ctx, *contentType, data)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, report)
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// readInput reads at most limit+1 bytes so the service can reject oversized bodies
func readInput(path string, limit int64) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
