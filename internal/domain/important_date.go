package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateType classifies an important date.
type DateType string

const (
	DateBirthday    DateType = "birthday"
	DateAnniversary DateType = "anniversary"
	DateHoliday     DateType = "holiday"
	DateCustom      DateType = "custom"
)

// ImportantDate is a date worth remembering, optionally tied to a person.
// Recurring dates repeat annually; only the month and day of Date are
// significant for them.
type ImportantDate struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID  `bson:"userId" json:"userId"`
	PersonID *primitive.ObjectID `bson:"personId,omitempty" json:"personId,omitempty"`
	Title    string              `bson:"title" json:"title"`
	Date     time.Time           `bson:"date" json:"date"`
	Type     DateType            `bson:"type" json:"type"`

	IsRecurring        bool `bson:"isRecurring" json:"isRecurring"`
	ReminderDaysBefore *int `bson:"reminderDaysBefore,omitempty" json:"reminderDaysBefore,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
