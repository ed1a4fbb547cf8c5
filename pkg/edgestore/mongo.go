package edgestore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB-backed edge store for server deployments.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
// Edges are stored in the "custom_edges" collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("custom_edges"),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*CustomEdge, error) {
	var edge CustomEdge
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&edge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find edge: %w", err)
	}
	return &edge, nil
}

func (s *MongoStore) List(ctx context.Context, graphHash string) ([]*CustomEdge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"graph_hash": graphHash}, opts)
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*CustomEdge
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode edges: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Put(ctx context.Context, edge *CustomEdge) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": edge.ID}, edge, opts); err != nil {
		return fmt.Errorf("store edge: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete edge: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
