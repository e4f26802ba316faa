// Package archive keeps loaded dataset snapshots in MongoDB so a restarted
// server can serve the last good data before its first fetch completes, and
// so past snapshots can be inspected.
package archive

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// Collection holds one document per snapshot.
const Collection = "snapshots"

const connectTimeout = 10 * time.Second

// document is the stored form of a snapshot. The embedded Meta supplies the
// _id field.
type document struct {
	neo.Meta     `bson:",inline"`
	Count        int               `bson:"count"`
	Hazardous    int               `bson:"hazardous_count"`
	Observations []neo.Observation `bson:"observations"`
}

func toDocument(ds *neo.Dataset) document {
	return document{
		Meta:         ds.Meta(),
		Count:        ds.Len(),
		Hazardous:    ds.HazardousCount(),
		Observations: ds.Observations(),
	}
}

func (d document) dataset() *neo.Dataset {
	return neo.FromSnapshot(neo.Snapshot{Meta: d.Meta, Observations: d.Observations})
}

// Mongo is a snapshot archive backed by a MongoDB collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to uri, verifies the connection and ensures the loaded_at
// index exists.
func Open(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo")
	}

	coll := client.Database(database).Collection(Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "loaded_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create snapshot index")
	}
	return &Mongo{client: client, coll: coll}, nil
}

// Save stores ds, replacing any snapshot with the same ID.
func (m *Mongo) Save(ctx context.Context, ds *neo.Dataset) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": ds.ID()},
		toDocument(ds),
		options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "save snapshot %s", ds.ID())
	}
	return nil
}

// Latest returns the most recently loaded snapshot, or a NOT_FOUND error
// when the archive is empty.
func (m *Mongo) Latest(ctx context.Context) (*neo.Dataset, error) {
	var doc document
	err := m.coll.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "loaded_at", Value: -1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.New(errs.ErrCodeNotFound, "archive is empty")
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "load latest snapshot")
	}
	return doc.dataset(), nil
}

// Get returns the snapshot with the given ID.
func (m *Mongo) Get(ctx context.Context, id string) (*neo.Dataset, error) {
	var doc document
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.New(errs.ErrCodeNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "load snapshot %s", id)
	}
	return doc.dataset(), nil
}

// List returns snapshot metadata, newest first, without observations.
func (m *Mongo) List(ctx context.Context, limit int64) ([]neo.Meta, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "loaded_at", Value: -1}}).
		SetProjection(bson.M{"observations": 0})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "list snapshots")
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode snapshots")
	}
	metas := make([]neo.Meta, len(docs))
	for i, d := range docs {
		metas[i] = d.Meta
	}
	return metas, nil
}

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
