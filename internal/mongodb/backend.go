package mongodb

import (
	"context"
	"time"

	"github.com/adcsa/ged/internal/storage"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const createIndexTimeout = 5 * time.Second

// entry is one stored value as it is laid out in the collection.
type entry struct {
	Owner   string    `bson:"owner"`
	Key     string    `bson:"key"`
	Value   string    `bson:"value"`
	Updated time.Time `bson:"updated"`
}

type backend struct {
	database   *mongo.Database
	collection *mongo.Collection
}

// NewBackend returns a storage.Backend keeping values as documents in the
// "localStorage" collection. With a non-zero ttl, MongoDB removes values
// that were not written for that long. MongoDB expires documents with
// second granularity, so a non-zero ttl under one second is rejected.
func NewBackend(
	ctx context.Context,
	database *mongo.Database,
	ttl time.Duration,
) (storage.Backend, error) {
	if ttl < 0 || (ttl > 0 && ttl < time.Second) {
		return nil, errors.Errorf(
			"invalid ttl %s for the localStorage collection; use zero or at "+
				"least one second",
			ttl,
		)
	}
	ctx, cancel := context.WithTimeout(ctx, createIndexTimeout)
	defer cancel()
	collection := database.Collection("localStorage")
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "key", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if ttl > 0 {
		indexes = append(
			indexes,
			mongo.IndexModel{
				Keys: bson.M{
					"updated": 1,
				},
				Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
			},
		)
	}
	if _, err :=
		collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, errors.Wrap(
			err,
			"error adding indexes to localStorage collection",
		)
	}
	return &backend{
		database:   database,
		collection: collection,
	}, nil
}

func (b *backend) Store(owner string) storage.Store {
	return &store{
		collection: b.collection,
		owner:      owner,
	}
}

func (b *backend) CheckHealth(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := b.database.Client().Ping(
		pingCtx,
		readpref.Primary(),
	); err != nil {
		return errors.Wrap(err, "error pinging mongodb database")
	}
	return nil
}

type store struct {
	collection *mongo.Collection
	owner      string
}

func (s *store) Get(ctx context.Context, key string) (string, bool, error) {
	e := entry{}
	res := s.collection.FindOne(ctx, bson.M{"owner": s.owner, "key": key})
	if res.Err() == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if res.Err() != nil {
		return "", false, errors.Wrapf(res.Err(), "error finding %q", key)
	}
	if err := res.Decode(&e); err != nil {
		return "", false, errors.Wrapf(err, "error decoding %q", key)
	}
	return e.Value, true, nil
}

func (s *store) Set(ctx context.Context, key string, value string) error {
	if _, err := s.collection.UpdateOne(
		ctx,
		bson.M{"owner": s.owner, "key": key},
		bson.M{
			"$set": bson.M{
				"value":   value,
				"updated": time.Now().UTC(),
			},
		},
		options.Update().SetUpsert(true),
	); err != nil {
		return errors.Wrapf(err, "error upserting %q", key)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(
		ctx,
		bson.M{"owner": s.owner, "key": key},
	); err != nil {
		return errors.Wrapf(err, "error deleting %q", key)
	}
	return nil
}
