package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// StudySession is a tutoring offering published by a tutor. Schedule fields are
// kept as the client sends them (ISO dates).
type StudySession struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title                 string             `bson:"title" json:"title" validate:"required"`
	TutorName             string             `bson:"tutorName" json:"tutorName"`
	TutorEmail            string             `bson:"email" json:"email" validate:"required,email"`
	Description           string             `bson:"description" json:"description"`
	RegistrationStartDate string             `bson:"registrationStartDate" json:"registrationStartDate"`
	RegistrationEndDate   string             `bson:"registrationEndDate" json:"registrationEndDate"`
	ClassStartTime        string             `bson:"classStartTime" json:"classStartTime"`
	ClassEndDate          string             `bson:"classEndDate" json:"classEndDate"`
	SessionDuration       string             `bson:"sessionDuration" json:"sessionDuration"`
	Fee                   float64            `bson:"Fee" json:"Fee"`
	Status                string             `bson:"Status" json:"Status"`
}

// SessionEdit carries the fields a tutor may overwrite on an existing session.
type SessionEdit struct {
	Title                 *string  `json:"title"`
	TutorName             *string  `json:"tutorName"`
	Description           *string  `json:"description"`
	RegistrationStartDate *string  `json:"registrationStartDate"`
	RegistrationEndDate   *string  `json:"registrationEndDate"`
	ClassStartTime        *string  `json:"classStartTime"`
	ClassEndDate          *string  `json:"classEndDate"`
	SessionDuration       *string  `json:"sessionDuration"`
	Fee                   *float64 `json:"Fee" validate:"omitempty,gte=0"`
}
