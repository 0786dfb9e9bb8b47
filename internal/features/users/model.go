package users

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. The password field holds only the bcrypt hash
// and is never serialized.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name     string               `bson:"name" json:"name"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password,omitempty" json:"-"`
	Image    string               `bson:"image" json:"image"`
	Places   []primitive.ObjectID `bson:"places" json:"places"`
}

// SignupRequest carries the multipart form fields of POST /api/users/signup.
type SignupRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginRequest is the JSON body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}
