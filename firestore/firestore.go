package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mager/bloom/bloom"
	"github.com/mager/bloom/config"
)

// AnalysisDoc is a cached analysis. The analysis is kept as a JSON string
// since firestore caps array nesting and segment pitch vectors nest.
type AnalysisDoc struct {
	Payload   string    `json:"payload" firestore:"payload"`
	FetchedAt time.Time `json:"fetchedAt" firestore:"fetchedAt"`
}

// ProvideDB provides a firestore client
func ProvideDB(cfg config.Config, logger *zap.SugaredLogger) (*firestore.Client, error) {
	client, err := firestore.NewClient(context.Background(), cfg.FirestoreProject)
	if err != nil {
		logger.Errorw("Failed to create firestore client", "project", cfg.FirestoreProject, "error", err)
		return nil, err
	}
	return client, nil
}

// DocStore reads and writes analysis documents by track id.
type DocStore interface {
	Get(ctx context.Context, trackID string) (AnalysisDoc, error)
	Set(ctx context.Context, trackID string, doc AnalysisDoc) error
}

// CollectionStore is a DocStore on one firestore collection.
type CollectionStore struct {
	client     *firestore.Client
	collection string
}

func (s *CollectionStore) Get(ctx context.Context, trackID string) (AnalysisDoc, error) {
	var doc AnalysisDoc
	snap, err := s.client.Collection(s.collection).Doc(trackID).Get(ctx)
	if err != nil {
		return doc, err
	}
	err = snap.DataTo(&doc)
	return doc, err
}

func (s *CollectionStore) Set(ctx context.Context, trackID string, doc AnalysisDoc) error {
	_, err := s.client.Collection(s.collection).Doc(trackID).Set(ctx, doc)
	return err
}

// Cache keeps raw analyses in a firestore collection keyed by track id.
type Cache struct {
	store DocStore
	ttl   time.Duration
	now   func() time.Time
}

func NewCache(client *firestore.Client, collection string, ttl time.Duration) *Cache {
	return NewStoreCache(&CollectionStore{client: client, collection: collection}, ttl)
}

// NewStoreCache builds a Cache on any DocStore.
func NewStoreCache(store DocStore, ttl time.Duration) *Cache {
	return &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, trackID string) (*bloom.Analysis, error) {
	doc, err := c.store.Get(ctx, trackID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, bloom.ErrCacheMiss
		}
		return nil, errors.Wrapf(err, "read cached analysis %s", trackID)
	}
	return decodeDoc(doc, c.ttl, c.now())
}

func (c *Cache) Put(ctx context.Context, trackID string, a *bloom.Analysis) error {
	doc, err := encodeDoc(a, c.now())
	if err != nil {
		return errors.Wrapf(err, "encode analysis %s", trackID)
	}

	err = c.store.Set(ctx, trackID, doc)
	return errors.Wrapf(err, "write cached analysis %s", trackID)
}

func encodeDoc(a *bloom.Analysis, now time.Time) (AnalysisDoc, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return AnalysisDoc{}, err
	}
	return AnalysisDoc{Payload: string(b), FetchedAt: now.UTC()}, nil
}

func decodeDoc(doc AnalysisDoc, ttl time.Duration, now time.Time) (*bloom.Analysis, error) {
	if ttl > 0 && now.Sub(doc.FetchedAt) > ttl {
		return nil, bloom.ErrCacheMiss
	}

	var a bloom.Analysis
	if err := json.Unmarshal([]byte(doc.Payload), &a); err != nil {
		return nil, errors.Wrap(err, "decode cached analysis")
	}
	return &a, nil
}

var Options = ProvideDB
