package places

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourplaces/backend/internal/pkg/database"
)

// CreatorLinker maintains the membership list on the owning user. The
// transactional methods receive the session context so their writes join the
// place write in one commit.
type CreatorLinker interface {
	AddPlace(ctx context.Context, userID, placeID primitive.ObjectID) error
	RemovePlace(ctx context.Context, userID, placeID primitive.ObjectID) error
}

type Repository struct {
	conn       *database.Connection
	collection *mongo.Collection
	users      CreatorLinker
}

func NewRepository(conn *database.Connection, users CreatorLinker) *Repository {
	collection := conn.Database.Collection("places")

	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "creator", Value: 1}},
	})

	return &Repository{conn: conn, collection: collection, users: users}
}

// GetByID returns nil without error when no place matches; a malformed id
// cannot match anything and is treated the same way.
func (r *Repository) GetByID(ctx context.Context, id string) (*Place, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var place Place
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

// ListByCreator returns every place owned by the given user.
func (r *Repository) ListByCreator(ctx context.Context, userID string) ([]Place, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []Place{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"creator": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []Place
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Place{}
	}
	return list, nil
}

// Create inserts the place and appends its id to the creator's places list
// in one transaction. A partially linked state is never observable: either
// both documents commit or neither does.
func (r *Repository) Create(ctx context.Context, place *Place) error {
	place.ID = primitive.NewObjectID()

	return r.conn.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := r.collection.InsertOne(sessCtx, place); err != nil {
			return fmt.Errorf("failed to insert place: %w", err)
		}
		if err := r.users.AddPlace(sessCtx, place.Creator, place.ID); err != nil {
			return fmt.Errorf("failed to link place to creator: %w", err)
		}
		return nil
	})
}

// Update mutates title and description in place.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, title, description string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"title": title, "description": description}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("place %s not found", id.Hex())
	}
	return nil
}

// Delete removes the place and pulls its id from the creator's places list
// in one transaction, the mirror image of Create.
func (r *Repository) Delete(ctx context.Context, place *Place) error {
	return r.conn.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		result, err := r.collection.DeleteOne(sessCtx, bson.M{"_id": place.ID})
		if err != nil {
			return fmt.Errorf("failed to delete place: %w", err)
		}
		if result.DeletedCount == 0 {
			return fmt.Errorf("place %s not found", place.ID.Hex())
		}
		if err := r.users.RemovePlace(sessCtx, place.Creator, place.ID); err != nil {
			return fmt.Errorf("failed to unlink place from creator: %w", err)
		}
		return nil
	})
}
