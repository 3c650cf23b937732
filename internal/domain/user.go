package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a minimal identity that exercises are recorded against.
// Usernames are not unique and are never validated.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
}
