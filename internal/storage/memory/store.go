// Package memory implements storage interfaces in process memory
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirosfoundation/go-mimeparts/internal/storage"
)

// Store implements storage.Store with maps guarded by a mutex
type Store struct {
	mu          sync.RWMutex
	inspections map[string]*storage.Inspection
	parts       map[string]*storage.PartData
}

var _ storage.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		inspections: make(map[string]*storage.Inspection),
		parts:       make(map[string]*storage.PartData),
	}
}

// Close is a no-op
func (s *Store) Close(ctx context.Context) error { return nil }

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) CreateInspection(ctx context.Context, inspection *storage.Inspection) error {
	if inspection.CreatedAt.IsZero() {
		inspection.CreatedAt = time.Now()
	}
	if inspection.ID == "" {
		inspection.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inspections[inspection.ID]; ok {
		return fmt.Errorf("%w: inspection %s", storage.ErrExists, inspection.ID)
	}
	s.inspections[inspection.ID] = copyInspection(inspection)
	return nil
}

func (s *Store) GetInspection(ctx context.Context, id string) (*storage.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inspection, ok := s.inspections[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyInspection(inspection), nil
}

func (s *Store) ListInspections(ctx context.Context, filter *storage.InspectionFilter) ([]*storage.Inspection, error) {
	s.mu.RLock()
	var out []*storage.Inspection
	for _, inspection := range s.inspections {
		if filter != nil {
			if filter.ContentType != "" && inspection.ContentType != filter.ContentType {
				continue
			}
			if !filter.Since.IsZero() && inspection.CreatedAt.Before(filter.Since) {
				continue
			}
		}
		out = append(out, copyInspection(inspection))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter != nil && filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) StorePart(ctx context.Context, inspectionID string, part *storage.PartData) (string, error) {
	if part.Checksum == "" {
		part.Checksum = storage.Checksum(part.Data)
	}
	part.InspectionID = inspectionID
	part.ID = inspectionID + "/" + strconv.Itoa(part.Index)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[part.ID]; ok {
		return "", fmt.Errorf("%w: part %s", storage.ErrExists, part.ID)
	}
	s.parts[part.ID] = copyPart(part)
	return part.ID, nil
}

func (s *Store) GetPart(ctx context.Context, id string) (*storage.PartData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	part, ok := s.parts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyPart(part), nil
}

func (s *Store) DeletePart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.parts, id)
	return nil
}

func copyInspection(in *storage.Inspection) *storage.Inspection {
	cp := *in
	cp.PartIDs = append([]string(nil), in.PartIDs...)
	return &cp
}

func copyPart(in *storage.PartData) *storage.PartData {
	cp := *in
	cp.Data = append([]byte(nil), in.Data...)
	cp.Headers = maps.Clone(in.Headers)
	return &cp
}
