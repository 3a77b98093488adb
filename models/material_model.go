package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Material struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id" form:"-"`
	Title      string             `bson:"title" json:"title" form:"title" validate:"required"`
	SessionID  string             `bson:"sessionId" json:"sessionId" form:"sessionId" validate:"required"`
	TutorEmail string             `bson:"email" json:"email" form:"email" validate:"required,email"`
	Link       string             `bson:"link,omitempty" json:"link,omitempty" form:"link" validate:"omitempty,url"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty" form:"image"`
}

type MaterialEdit struct {
	Title *string `json:"title"`
	Link  *string `json:"link" validate:"omitempty,url"`
	Image *string `json:"image"`
}
