package places

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a geocoded coordinate pair.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Place is a point-of-interest record owned by exactly one user. The owning
// user's places list always contains this id; both sides of that link are
// written in one transaction.
type Place struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Address     string             `bson:"address" json:"address"`
	Location    Location           `bson:"location" json:"location"`
	Creator     primitive.ObjectID `bson:"creator" json:"creator"`
}

// CreateRequest carries the multipart form fields of POST /api/places.
type CreateRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Address     string `form:"address"`
}

// UpdateRequest is the JSON body of PATCH /api/places/:pid. Only title and
// description are mutable.
type UpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
