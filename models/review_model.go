package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SessionID    string             `bson:"sessionId" json:"sessionId" validate:"required"`
	StudentEmail string             `bson:"studentEmail" json:"studentEmail" validate:"required,email"`
	StudentName  string             `bson:"studentName" json:"studentName"`
	Rating       int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment      string             `bson:"comment" json:"comment"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
