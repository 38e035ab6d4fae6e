// Package mongodb implements storage interfaces using MongoDB
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirosfoundation/go-mimeparts/internal/storage"
)

// Store implements storage.Store using MongoDB
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	gridfs *gridfs.Bucket

	inspections *mongo.Collection
}

var _ storage.Store = (*Store)(nil)

// Config holds MongoDB connection settings
type Config struct {
	URI            string
	Database       string
	GridFSBucket   string
	ChunkSizeBytes int32
}

// NewStore creates a new MongoDB store
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	// Connect to MongoDB
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	// Create GridFS bucket for part bodies
	bucketName := cfg.GridFSBucket
	if bucketName == "" {
		bucketName = "parts"
	}
	chunkSize := cfg.ChunkSizeBytes
	if chunkSize == 0 {
		chunkSize = 261120 // 255KB
	}
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().
		SetName(bucketName).
		SetChunkSizeBytes(chunkSize))
	if err != nil {
		return nil, fmt.Errorf("creating GridFS bucket: %w", err)
	}

	s := &Store{
		client:      client,
		db:          db,
		gridfs:      bucket,
		inspections: db.Collection("inspections"),
	}

	if err := s.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("creating indexes: %w", err)
	}

	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.inspections.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "content_type", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("creating inspection indexes: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// InspectionStore implementation

func (s *Store) CreateInspection(ctx context.Context, inspection *storage.Inspection) error {
	if inspection.CreatedAt.IsZero() {
		inspection.CreatedAt = time.Now()
	}
	if inspection.ID == "" {
		inspection.ID = primitive.NewObjectID().Hex()
	}

	_, err := s.inspections.InsertOne(ctx, inspection)
	return insertError(err, "inspection", inspection.ID)
}

// insertError maps a duplicate key failure onto storage.ErrExists
func insertError(err error, kind, id string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s %s", storage.ErrExists, kind, id)
	}
	return err
}

func (s *Store) GetInspection(ctx context.Context, id string) (*storage.Inspection, error) {
	var inspection storage.Inspection
	err := s.inspections.FindOne(ctx, bson.M{"_id": id}).Decode(&inspection)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inspection, nil
}

func (s *Store) ListInspections(ctx context.Context, filter *storage.InspectionFilter) ([]*storage.Inspection, error) {
	query := bson.M{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	if filter != nil {
		if filter.ContentType != "" {
			query["content_type"] = filter.ContentType
		}
		if !filter.Since.IsZero() {
			query["created_at"] = bson.M{"$gte": filter.Since}
		}
		if filter.Limit > 0 {
			opts.SetLimit(int64(filter.Limit))
		}
	}

	cursor, err := s.inspections.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var inspections []*storage.Inspection
	if err := cursor.All(ctx, &inspections); err != nil {
		return nil, err
	}
	return inspections, nil
}

// PartStore implementation using GridFS

func (s *Store) StorePart(ctx context.Context, inspectionID string, part *storage.PartData) (string, error) {
	if part.Checksum == "" {
		part.Checksum = storage.Checksum(part.Data)
	}
	part.InspectionID = inspectionID

	// Store in GridFS with metadata
	filename := fmt.Sprintf("%s/%d", inspectionID, part.Index)
	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"inspection_id": inspectionID,
		"index":         part.Index,
		"content_type":  part.ContentType,
		"disposition":   part.Disposition,
		"content_id":    part.ContentID,
		"headers":       part.Headers,
		"checksum":      part.Checksum,
	})

	uploadStream, err := s.gridfs.OpenUploadStream(filename, uploadOpts)
	if err != nil {
		return "", fmt.Errorf("opening upload stream: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := uploadStream.SetWriteDeadline(deadline); err != nil {
			uploadStream.Close()
			return "", fmt.Errorf("setting write deadline: %w", err)
		}
	}

	if _, err := uploadStream.Write(part.Data); err != nil {
		uploadStream.Close()
		return "", fmt.Errorf("writing part: %w", err)
	}
	if err := uploadStream.Close(); err != nil {
		return "", fmt.Errorf("closing upload stream: %w", err)
	}

	part.ID = uploadStream.FileID.(primitive.ObjectID).Hex()
	return part.ID, nil
}

func (s *Store) GetPart(ctx context.Context, id string) (*storage.PartData, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid part ID: %w", err)
	}

	downloadStream, err := s.gridfs.OpenDownloadStream(objID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening download stream: %w", err)
	}
	defer downloadStream.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := downloadStream.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("setting read deadline: %w", err)
		}
	}

	data, err := io.ReadAll(downloadStream)
	if err != nil {
		return nil, fmt.Errorf("reading part: %w", err)
	}

	var meta partMetadata
	if raw := downloadStream.GetFile().Metadata; raw != nil {
		if err := bson.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("decoding part metadata: %w", err)
		}
	}

	return &storage.PartData{
		ID:           id,
		InspectionID: meta.InspectionID,
		Index:        meta.Index,
		ContentType:  meta.ContentType,
		Disposition:  meta.Disposition,
		ContentID:    meta.ContentID,
		Headers:      meta.Headers,
		Data:         data,
		Checksum:     meta.Checksum,
	}, nil
}

func (s *Store) DeletePart(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid part ID: %w", err)
	}
	err = s.gridfs.Delete(objID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return storage.ErrNotFound
	}
	return err
}

type partMetadata struct {
	InspectionID string            `bson:"inspection_id"`
	Index        int               `bson:"index"`
	ContentType  string            `bson:"content_type"`
	Disposition  string            `bson:"disposition"`
	ContentID    string            `bson:"content_id"`
	Headers      map[string]string `bson:"headers"`
	Checksum     string            `bson:"checksum"`
}
