package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Achievement types: which per-user total the goal is measured against.
const (
	AchievementTypePoints = "points"
	AchievementTypeItems  = "items"
)

type Achievement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"`
	Goal        int                `bson:"goal" json:"goal"`
}
