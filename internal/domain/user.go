package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system. Every other record (goals,
// people, dates, logs, todos) belongs to exactly one user.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Timezone     string             `bson:"timezone,omitempty" json:"timezone,omitempty"`

	// Working hours, used by the assistant when suggesting when to schedule
	// things. Stored as hour-of-day (0-23).
	WorkStartHour *int `bson:"workStartHour,omitempty" json:"workStartHour,omitempty"`
	WorkEndHour   *int `bson:"workEndHour,omitempty" json:"workEndHour,omitempty"`

	// PriorityAreas are the goal categories the user said matter most
	// during onboarding.
	PriorityAreas       []GoalCategory `bson:"priorityAreas,omitempty" json:"priorityAreas,omitempty"`
	OnboardingCompleted bool           `bson:"onboardingCompleted" json:"onboardingCompleted"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
