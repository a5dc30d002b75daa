package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Material is one entry of a classification's materials list.
type Material struct {
	Material string `bson:"material" json:"material"`
}

// Classification is the structured result of analyzing one image.
// The field set is part of the wire contract with the vision API and the
// clients; all five fields are accessed by name downstream.
type Classification struct {
	Item        string     `bson:"item" json:"item"`
	Recyclable  bool       `bson:"recyclable" json:"recyclable"`
	Materials   []Material `bson:"materials,omitempty" json:"materials,omitempty"`
	Description string     `bson:"description" json:"description"`
	Points      int        `bson:"points" json:"points"`
}

// ScanRecord is one stored outcome of a confirmed capture. Records are
// immutable after insert; no endpoint updates or deletes them.
type ScanRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`

	// Owner is the user's email. It is a convention, not a constraint:
	// aggregation code must tolerate records whose owner matches no user.
	Owner string `bson:"owner" json:"owner"`

	// Image is the base64 data URI stored inline.
	Image string `bson:"image" json:"image"`

	// ImageURL is set only when Cloudinary offload is configured.
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`

	// RequestID is the client-generated identifier used to de-duplicate
	// retried submits. Absent on records from older clients.
	RequestID string `bson:"request_id,omitempty" json:"request_id,omitempty"`

	APIResponse Classification `bson:"apiResponse" json:"apiResponse"`
}
