package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gameforge/auth-core/internal/core/domain"
)

const clientsCollection = "api_clients"

type MongoClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *MongoClientRepository {
	return &MongoClientRepository{coll: db.Collection(clientsCollection)}
}

type mongoClient struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Version   int    `bson:"version"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoClientRepository) Create(ctx context.Context, client *domain.APIClient) (*domain.APIClient, error) {
	doc := mongoClient{
		ID:        client.ID,
		Name:      client.Name,
		Version:   client.Version,
		CreatedAt: client.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return client, nil
}

func (r *MongoClientRepository) FindByID(ctx context.Context, id string) (*domain.APIClient, error) {
	var mc mongoClient
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &domain.APIClient{
		ID:        mc.ID,
		Name:      mc.Name,
		Version:   mc.Version,
		CreatedAt: unixToTime(mc.CreatedAt),
	}, nil
}

// BumpVersion increments the client version with a single atomic $inc, so
// concurrent invalidations always sum and the version never moves backwards.
func (r *MongoClientRepository) BumpVersion(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return fmt.Errorf("bump client version: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *MongoClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
