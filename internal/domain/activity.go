package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType identifies what kind of log an ActivityLog is.
type ActivityType string

const (
	ActivityGoal       ActivityType = "goal"        // progress against a weekly goal
	ActivityExercise   ActivityType = "exercise"    // a workout/exercise session
	ActivityDowntime   ActivityType = "downtime"    // intentional rest
	ActivityScreenTime ActivityType = "screen_time" // phone/screen usage
)

// ScreenIntent qualifies screen-time logs: intentional use (a movie with
// the kids) versus passive scrolling.
type ScreenIntent string

const (
	IntentIntentional ScreenIntent = "intentional"
	IntentPassive     ScreenIntent = "passive"
)

// ActivityLog is a single logged activity. Logs are immutable once
// created (deletion only). DurationMinutes is optional; downstream
// aggregation substitutes a 30 minute default when it is absent.
type ActivityLog struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Type   ActivityType       `bson:"type" json:"type"`

	// GoalID links the log to a goal when Type is "goal".
	GoalID *primitive.ObjectID `bson:"goalId,omitempty" json:"goalId,omitempty"`
	// GoalCategory is denormalized from the goal at log time so
	// aggregation does not need a join.
	GoalCategory GoalCategory `bson:"goalCategory,omitempty" json:"goalCategory,omitempty"`

	DurationMinutes *int   `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Note            string `bson:"note,omitempty" json:"note,omitempty"`

	// PeopleInvolved lists the people who shared this activity. A single
	// log may name several people; each of them "received" the full
	// session when time is attributed per person.
	PeopleInvolved []primitive.ObjectID `bson:"peopleInvolved,omitempty" json:"peopleInvolved,omitempty"`

	// ScreenIntent is set only for screen_time logs.
	ScreenIntent ScreenIntent `bson:"screenIntent,omitempty" json:"screenIntent,omitempty"`

	LoggedAt  time.Time `bson:"loggedAt" json:"loggedAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
