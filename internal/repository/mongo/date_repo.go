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

const dateCollectionName = "important_dates"

// mongoImportantDateRepository implements repository.ImportantDateRepository
type mongoImportantDateRepository struct {
	collection *mongo.Collection
}

// NewMongoImportantDateRepository creates a new ImportantDate repository
// backed by MongoDB.
func NewMongoImportantDateRepository(db *mongo.Database) repository.ImportantDateRepository {
	return &mongoImportantDateRepository{
		collection: db.Collection(dateCollectionName),
	}
}

// Create inserts a new important date.
func (r *mongoImportantDateRepository) Create(ctx context.Context, date *domain.ImportantDate) (primitive.ObjectID, error) {
	if date.Title == "" || date.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("date title and user ID are required")
	}
	if date.Date.IsZero() {
		return primitive.NilObjectID, errors.New("date value is required")
	}

	date.ID = primitive.NewObjectID()
	date.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, date)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a date, scoped to its owner.
func (r *mongoImportantDateRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.ImportantDate, error) {
	var date domain.ImportantDate
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&date)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &date, nil
}

// GetByUserID retrieves all of a user's dates ordered by calendar date.
func (r *mongoImportantDateRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ImportantDate, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// GetByPersonID retrieves the dates tied to one person.
func (r *mongoImportantDateRepository) GetByPersonID(ctx context.Context, personID, userID primitive.ObjectID) ([]domain.ImportantDate, error) {
	return r.find(ctx, bson.M{"personId": personID, "userId": userID})
}

func (r *mongoImportantDateRepository) find(ctx context.Context, filter bson.M) ([]domain.ImportantDate, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dates []domain.ImportantDate
	if err = cursor.All(ctx, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// Update modifies an existing date, scoped to its owner.
func (r *mongoImportantDateRepository) Update(ctx context.Context, date *domain.ImportantDate) error {
	if date.ID == primitive.NilObjectID {
		return errors.New("date ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"title":              date.Title,
			"date":               date.Date,
			"type":               date.Type,
			"personId":           date.PersonID,
			"isRecurring":        date.IsRecurring,
			"reminderDaysBefore": date.ReminderDaysBefore,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": date.ID, "userId": date.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a date owned by the user.
func (r *mongoImportantDateRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByPersonID removes every date tied to a person. Used when a
// person is deleted or their dates are replaced wholesale.
func (r *mongoImportantDateRepository) DeleteByPersonID(ctx context.Context, personID, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"personId": personID, "userId": userID})
	return err
}

// EnsureImportantDateIndexes creates the owner and person indexes.
func EnsureImportantDateIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "personId", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Could not create important date indexes: %v", err)
	}
}
