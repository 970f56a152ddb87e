package database

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/session-todos/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Performance = 100

var _ fiber.Storage = (*SessionStorage)(nil)

// SessionStorage keeps encoded session data in a MongoDB collection. It
// implements fiber.Storage so the session middleware can use it in place of
// the in-memory default.
type SessionStorage struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type sessionDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

func newSessionDocument(key string, val []byte, exp time.Duration, now time.Time) sessionDocument {
	doc := sessionDocument{Key: key, Value: val}
	if exp > 0 {
		doc.ExpiresAt = now.Add(exp)
	}
	return doc
}

// expired reports whether the document outlived its expiration. The TTL
// index removes such documents eventually, but not immediately.
func (d sessionDocument) expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// NewSessionStorage connects to MongoDB and prepares the session collection.
func NewSessionStorage(cfg *config.Config) (*SessionStorage, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("you must set your 'MONGODB_URI' environmental variable")
	}
	if cfg.Database == "" {
		return nil, errors.New("you must set your 'DATABASE' environmental variable")
	}

	ctx, cancel := NewDBContext(10 * time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	// Check the connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	coll := client.Database(cfg.Database).Collection(cfg.SessionCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &SessionStorage{client: client, coll: coll}, nil
}

func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := NewDBContext(5 * time.Second)
	defer cancel()

	var doc sessionDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.expired(time.Now()) {
		return nil, nil
	}
	return doc.Value, nil
}

func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := NewDBContext(5 * time.Second)
	defer cancel()

	doc := newSessionDocument(key, val, exp, time.Now())
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := NewDBContext(5 * time.Second)
	defer cancel()

	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *SessionStorage) Reset() error {
	ctx, cancel := NewDBContext(10 * time.Second)
	defer cancel()

	_, err := s.coll.DeleteMany(ctx, bson.D{})
	return err
}

func (s *SessionStorage) Close() error {
	ctx, cancel := NewDBContext(10 * time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// NewDBContext returns a new Context according to app performance
func NewDBContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d*Performance/100)
}
