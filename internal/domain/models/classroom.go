package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classroom is a board that students post questions to. The short Code
// is the public join handle students type in; it is unique within the
// classrooms collection.
type Classroom struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Code      string             `bson:"code" json:"code"`
	TeacherID primitive.ObjectID `bson:"teacher_id" json:"teacherId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// ClassroomSummary is the joined shape embedded in question listings
// and the filter UI: just enough to label and link a classroom.
type ClassroomSummary struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Code string             `bson:"code" json:"code"`
}
