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

const todoCollectionName = "todos"

// mongoTodoRepository implements repository.TodoRepository
type mongoTodoRepository struct {
	collection *mongo.Collection
}

// NewMongoTodoRepository creates a new Todo repository backed by MongoDB.
func NewMongoTodoRepository(db *mongo.Database) repository.TodoRepository {
	return &mongoTodoRepository{
		collection: db.Collection(todoCollectionName),
	}
}

// Create inserts a new todo.
func (r *mongoTodoRepository) Create(ctx context.Context, todo *domain.Todo) (primitive.ObjectID, error) {
	if todo.Title == "" || todo.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("todo title and user ID are required")
	}

	todo.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}

	result, err := r.collection.InsertOne(ctx, todo)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// CreateMany inserts a batch of todos, typically the output of the
// assistant's quick-capture parsing.
func (r *mongoTodoRepository) CreateMany(ctx context.Context, todos []domain.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(todos))
	for i := range todos {
		if todos[i].Title == "" || todos[i].UserID == primitive.NilObjectID {
			return errors.New("todo title and user ID are required")
		}
		todos[i].ID = primitive.NewObjectID()
		todos[i].CreatedAt = now
		todos[i].UpdatedAt = now
		if todos[i].Priority == "" {
			todos[i].Priority = domain.PriorityMedium
		}
		docs = append(docs, todos[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByUserID retrieves a user's todos, open items first, newest first
// within each group.
func (r *mongoTodoRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, includeCompleted bool) ([]domain.Todo, error) {
	filter := bson.M{"userId": userID}
	if !includeCompleted {
		filter["completed"] = false
	}
	findOptions := options.Find().SetSort(bson.D{
		{Key: "completed", Value: 1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []domain.Todo
	if err = cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Update modifies an existing todo.
func (r *mongoTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo.ID == primitive.NilObjectID {
		return errors.New("todo ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"title":             todo.Title,
			"priority":          todo.Priority,
			"estimatedMinutes":  todo.EstimatedMinutes,
			"locationDependent": todo.LocationDependent,
			"suggestedLocation": todo.SuggestedLocation,
			"dueDate":           todo.DueDate,
			"completed":         todo.Completed,
			"updatedAt":         time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": todo.ID, "userId": todo.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a todo owned by the user.
func (r *mongoTodoRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTodoIndexes creates the owner index todos are queried by.
func EnsureTodoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "completed", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("WARN: Could not create todo indexes: %v", err)
	}
}
