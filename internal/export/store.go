package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record is the metadata kept for one export.
type Record struct {
	ExportID  string    `bson:"exportId" json:"exportId"`
	DocID     string    `bson:"docId" json:"docId"`
	Key       string    `bson:"key" json:"key"`
	URL       string    `bson:"url,omitempty" json:"url,omitempty"`
	Size      int64     `bson:"size" json:"size"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Store persists export records. Load returns nil, nil when not found.
type Store interface {
	Save(ctx context.Context, r *Record) error
	Load(ctx context.Context, exportID string) (*Record, error)
	ListByDocument(ctx context.Context, docID string) ([]*Record, error)
}

// MongoStore upserts records into a collection keyed by exportId.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Save(ctx context.Context, r *Record) error {
	filter := bson.M{"exportId": r.ExportID}
	opts := options.Update().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": r}, opts); err != nil {
		return fmt.Errorf("save export record: %w", err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, exportID string) (*Record, error) {
	var r Record
	if err := s.col.FindOne(ctx, bson.M{"exportId": exportID}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *MongoStore) ListByDocument(ctx context.Context, docID string) ([]*Record, error) {
	cur, err := s.col.Find(ctx, bson.M{"docId": docID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MemoryStore keeps records in process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]Record{}}
}

func (s *MemoryStore) Save(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ExportID]; !ok {
		s.order = append(s.order, r.ExportID)
	}
	s.records[r.ExportID] = *r
	return nil
}

func (s *MemoryStore) Load(_ context.Context, exportID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[exportID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *MemoryStore) ListByDocument(_ context.Context, docID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, id := range s.order {
		if r := s.records[id]; r.DocID == docID {
			out = append(out, &r)
		}
	}
	return out, nil
}
