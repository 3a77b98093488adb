package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking copies the session fields at booking time; later session edits do
// not propagate.
type Booking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SessionID      string             `bson:"sessionId" json:"sessionId" validate:"required"`
	StudentEmail   string             `bson:"studentEmail" json:"studentEmail" validate:"required,email"`
	StudentName    string             `bson:"studentName" json:"studentName"`
	Title          string             `bson:"title" json:"title"`
	TutorName      string             `bson:"tutorName" json:"tutorName"`
	TutorEmail     string             `bson:"tutorEmail" json:"tutorEmail"`
	Fee            float64            `bson:"Fee" json:"Fee"`
	ClassStartTime string             `bson:"classStartTime" json:"classStartTime"`
	ClassEndDate   string             `bson:"classEndDate" json:"classEndDate"`
	BookedAt       time.Time          `bson:"bookedAt" json:"bookedAt"`
}
