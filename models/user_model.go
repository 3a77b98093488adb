package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "Student"
	RoleTutor   = "Tutor"
	RoleAdmin   = "Admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role" json:"role" validate:"omitempty,oneof=Student Tutor Admin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
