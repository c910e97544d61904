package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalCategory classifies a weekly goal into one of the five life areas.
type GoalCategory string

const (
	CategoryRelationship GoalCategory = "relationship"
	CategoryKids         GoalCategory = "kids"
	CategoryHealth       GoalCategory = "health"
	CategoryWork         GoalCategory = "work"
	CategorySelf         GoalCategory = "self"
)

// GoalUnit distinguishes countable goals from continuous ones. The unit
// drives the rounding of ramped targets: sessions round to whole numbers
// (you can't log 1.3 dates), hours keep one decimal.
type GoalUnit string

const (
	UnitSessions GoalUnit = "sessions"
	UnitHours    GoalUnit = "hours"
)

// Goal is a weekly target the user is working toward, optionally with a
// ramp that builds the target up gradually from a lower starting value.
type Goal struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	Category        GoalCategory       `bson:"category" json:"category"`
	TargetPerWeek   float64            `bson:"targetPerWeek" json:"targetPerWeek"`
	CurrentProgress float64            `bson:"currentProgress" json:"currentProgress"`
	Unit            GoalUnit           `bson:"unit" json:"unit"`

	// Ramp configuration. When RampEnabled is false (or any of the pointer
	// fields is nil) the goal's target is simply TargetPerWeek. CurrentWeek
	// is advanced externally by the weekly rollover, never computed here.
	RampEnabled       bool     `bson:"rampEnabled" json:"rampEnabled"`
	RampStart         *float64 `bson:"rampStart,omitempty" json:"rampStart,omitempty"`
	RampDurationWeeks *int     `bson:"rampDurationWeeks,omitempty" json:"rampDurationWeeks,omitempty"`
	RampCurrentWeek   *int     `bson:"rampCurrentWeek,omitempty" json:"rampCurrentWeek,omitempty"`

	Icon      string    `bson:"icon,omitempty" json:"icon,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
