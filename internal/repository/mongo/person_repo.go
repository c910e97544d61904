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

const personCollectionName = "people"

// mongoPersonRepository implements repository.PersonRepository
type mongoPersonRepository struct {
	collection *mongo.Collection
}

// NewMongoPersonRepository creates a new Person repository backed by MongoDB.
func NewMongoPersonRepository(db *mongo.Database) repository.PersonRepository {
	return &mongoPersonRepository{
		collection: db.Collection(personCollectionName),
	}
}

// Create inserts a new person.
func (r *mongoPersonRepository) Create(ctx context.Context, person *domain.Person) (primitive.ObjectID, error) {
	if person.Name == "" || person.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("person name and user ID are required")
	}

	person.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	person.CreatedAt = now
	person.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, person)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a person, scoped to their owner.
func (r *mongoPersonRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Person, error) {
	var person domain.Person
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&person)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

// GetByUserID retrieves all people a user tracks, newest first.
func (r *mongoPersonRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Person, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var people []domain.Person
	if err = cursor.All(ctx, &people); err != nil {
		return nil, err
	}
	return people, nil
}

// Update modifies a person's editable fields. Last quality time is
// advanced through TouchQualityTime, never through a plain update.
func (r *mongoPersonRepository) Update(ctx context.Context, person *domain.Person) error {
	if person.ID == primitive.NilObjectID {
		return errors.New("person ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":         person.Name,
			"relationship": person.Relationship,
			"interests":    person.Interests,
			"notes":        person.Notes,
			"location":     person.Location,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": person.ID, "userId": person.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a person owned by the user.
func (r *mongoPersonRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// TouchQualityTime stamps last quality time on every listed person in
// one update. A shared activity counts for everyone named in it.
func (r *mongoPersonRepository) TouchQualityTime(ctx context.Context, userID primitive.ObjectID, personIDs []primitive.ObjectID, at time.Time) error {
	if len(personIDs) == 0 {
		return nil
	}
	filter := bson.M{
		"_id":    bson.M{"$in": personIDs},
		"userId": userID,
	}
	update := bson.M{
		"$set": bson.M{
			"lastQualityTime": at,
			"updatedAt":       time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// SetAvatarKey records the object storage key of the person's photo.
func (r *mongoPersonRepository) SetAvatarKey(ctx context.Context, id, userID primitive.ObjectID, objectKey string) error {
	update := bson.M{
		"$set": bson.M{
			"avatarObjectKey": objectKey,
			"updatedAt":       time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePersonIndexes creates the owner index people are queried by.
func EnsurePersonIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("WARN: Could not create person indexes: %v", err)
	}
}
