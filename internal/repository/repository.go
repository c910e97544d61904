package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors from other failures.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// GoalRepository defines the interface for interacting with goal data.
// Every read and write is scoped to the owning user; no cross-user
// visibility exists at this layer.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Goal, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	UpdateProgress(ctx context.Context, id, userID primitive.ObjectID, progress float64) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// ActivityLogRepository defines the interface for interacting with
// activity logs. Logs are immutable once created; only deletion is
// supported.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *domain.ActivityLog) (primitive.ObjectID, error)
	GetByUserAndWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ActivityLog, error)
	GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.ActivityLog, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// PersonRepository defines the interface for interacting with people.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Person, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error

	// TouchQualityTime stamps last quality time on every listed person.
	// Called whenever a logged activity names people.
	TouchQualityTime(ctx context.Context, userID primitive.ObjectID, personIDs []primitive.ObjectID, at time.Time) error

	// SetAvatarKey records the object storage key of the person's photo.
	SetAvatarKey(ctx context.Context, id, userID primitive.ObjectID, objectKey string) error
}

// ImportantDateRepository defines the interface for important dates.
type ImportantDateRepository interface {
	Create(ctx context.Context, date *domain.ImportantDate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.ImportantDate, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ImportantDate, error)
	GetByPersonID(ctx context.Context, personID, userID primitive.ObjectID) ([]domain.ImportantDate, error)
	Update(ctx context.Context, date *domain.ImportantDate) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByPersonID(ctx context.Context, personID, userID primitive.ObjectID) error
}

// TodoRepository defines the interface for todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, todos []domain.Todo) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID, includeCompleted bool) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
