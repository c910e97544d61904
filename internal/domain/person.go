package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Relationship categorizes how a person relates to the user. The
// awareness thresholds (how long is "too long" without quality time)
// depend on this.
type Relationship string

const (
	RelationshipPartner Relationship = "partner"
	RelationshipChild   Relationship = "child"
	RelationshipParent  Relationship = "parent"
	RelationshipSibling Relationship = "sibling"
	RelationshipFriend  Relationship = "friend"
	RelationshipOther   Relationship = "other"
)

// Person is someone the user wants to stay connected with.
type Person struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	Relationship Relationship       `bson:"relationship" json:"relationship"`
	Interests    []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`

	// AvatarObjectKey is the S3 key of the person's photo. The actual file
	// lives in object storage; handlers return presigned URLs.
	AvatarObjectKey string `bson:"avatarObjectKey,omitempty" json:"-"`

	// LastQualityTime is updated whenever a logged activity names this
	// person. Nil means quality time has never been recorded, which is
	// distinct from "recorded today" everywhere downstream.
	LastQualityTime *time.Time `bson:"lastQualityTime,omitempty" json:"lastQualityTime,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
