package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/repository"
)

const activityCollectionName = "activity_logs"

// mongoActivityLogRepository implements repository.ActivityLogRepository
type mongoActivityLogRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityLogRepository creates a new ActivityLog repository
// backed by MongoDB.
func NewMongoActivityLogRepository(db *mongo.Database) repository.ActivityLogRepository {
	return &mongoActivityLogRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Create inserts a new activity log. Logs are immutable; there is no
// update path.
func (r *mongoActivityLogRepository) Create(ctx context.Context, activityLog *domain.ActivityLog) (primitive.ObjectID, error) {
	if activityLog.UserID == primitive.NilObjectID || activityLog.Type == "" {
		return primitive.NilObjectID, errors.New("activity log user ID and type are required")
	}

	activityLog.ID = primitive.NewObjectID()
	if activityLog.LoggedAt.IsZero() {
		activityLog.LoggedAt = time.Now().UTC()
	}
	activityLog.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, activityLog)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserAndWindow retrieves a user's logs inside an inclusive
// timestamp window, newest first.
func (r *mongoActivityLogRepository) GetByUserAndWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ActivityLog, error) {
	filter := bson.M{
		"userId":   userID,
		"loggedAt": bson.M{"$gte": from, "$lte": to},
	}
	return r.find(ctx, filter)
}

// GetByUserSince retrieves all of a user's logs at or after the given
// instant, newest first.
func (r *mongoActivityLogRepository) GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.ActivityLog, error) {
	filter := bson.M{
		"userId":   userID,
		"loggedAt": bson.M{"$gte": since},
	}
	return r.find(ctx, filter)
}

func (r *mongoActivityLogRepository) find(ctx context.Context, filter bson.M) ([]domain.ActivityLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "loggedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.ActivityLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Delete removes a log owned by the user.
func (r *mongoActivityLogRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureActivityLogIndexes creates the owner+timestamp index used by
// every window query.
func EnsureActivityLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "loggedAt", Value: -1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("WARN: Could not create activity log indexes: %v", err)
	}
}
