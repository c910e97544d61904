package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoPriority is the soft urgency of a todo.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

// Todo is a single actionable item, either entered directly or produced
// by the assistant's quick-capture parsing.
type Todo struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Title  string             `bson:"title" json:"title"`

	Priority         TodoPriority `bson:"priority" json:"priority"`
	EstimatedMinutes *int         `bson:"estimatedMinutes,omitempty" json:"estimatedMinutes,omitempty"`

	// Location-dependent tasks (haircut, dry cleaning) carry a suggested
	// location so the assistant can batch errands.
	LocationDependent bool   `bson:"locationDependent" json:"locationDependent"`
	SuggestedLocation string `bson:"suggestedLocation,omitempty" json:"suggestedLocation,omitempty"`

	DueDate   *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Completed bool       `bson:"completed" json:"completed"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
