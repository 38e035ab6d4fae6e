// Package storage provides archive interfaces and implementations for
// inspected multipart bodies.
//
// # Interface Design
//
// The storage layer is organized into focused interfaces:
//
//   - [InspectionStore]: one record per inspected body
//   - [PartStore]: binary part bodies with their header metadata
//
// The [Store] interface combines both sub-stores for convenience.
//
// # Implementations
//
// The mongodb sub-package keeps part bodies in GridFS and inspection
// records in a regular collection. The memory sub-package holds everything
// in process for tests and short-lived embeddings.
//
// # Concurrency
//
// All store implementations must be safe for concurrent use from multiple
// goroutines.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when a record with the same ID is already stored
	ErrExists = errors.New("already exists")
)

// Store is the main storage interface combining all sub-stores
type Store interface {
	InspectionStore
	PartStore

	// Close releases storage resources
	Close(ctx context.Context) error

	// Ping checks database connectivity
	Ping(ctx context.Context) error
}

// InspectionStore manages inspection records
type InspectionStore interface {
	// CreateInspection stores a new record and assigns its ID if empty.
	// A duplicate ID fails with ErrExists.
	CreateInspection(ctx context.Context, inspection *Inspection) error

	// GetInspection retrieves a record by ID
	GetInspection(ctx context.Context, id string) (*Inspection, error)

	// ListInspections returns records, newest first
	ListInspections(ctx context.Context, filter *InspectionFilter) ([]*Inspection, error)
}

// PartStore manages archived part bodies
type PartStore interface {
	// StorePart stores a part body and returns its ID
	StorePart(ctx context.Context, inspectionID string, part *PartData) (string, error)

	// GetPart retrieves a part by ID
	GetPart(ctx context.Context, id string) (*PartData, error)

	// DeletePart deletes a part
	DeletePart(ctx context.Context, id string) error
}

// Inspection records one inspected body
type Inspection struct {
	ID          string    `json:"id" bson:"_id"`
	ContentType string    `json:"contentType" bson:"content_type"`
	Boundary    string    `json:"boundary,omitempty" bson:"boundary,omitempty"`
	Size        int       `json:"size" bson:"size"`
	PartIDs     []string  `json:"partIds,omitempty" bson:"part_ids,omitempty"`
	BrokenParts int       `json:"brokenParts" bson:"broken_parts"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// InspectionFilter narrows ListInspections
type InspectionFilter struct {
	ContentType string
	Since       time.Time
	Limit       int
}

// PartData holds a part body and its metadata
type PartData struct {
	ID           string            `json:"id"`
	InspectionID string            `json:"inspectionId"`
	Index        int               `json:"index"`
	ContentType  string            `json:"contentType"`
	Disposition  string            `json:"disposition,omitempty"`
	ContentID    string            `json:"contentId,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Data         []byte            `json:"-"`
	Checksum     string            `json:"checksum"`
}

// Checksum returns the hex SHA-256 of data
func Checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
