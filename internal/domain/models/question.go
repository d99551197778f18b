package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question statuses. A question starts unanswered, becomes answered when
// a TA attaches an answer, and a teacher may override the status to
// important to pin it on the board. The three values are disjoint: the
// status field holds exactly one of them at a time.
const (
	StatusUnanswered = "unanswered"
	StatusAnswered   = "answered"
	StatusImportant  = "important"
)

// QuestionStatuses lists the valid status values in filter-UI order.
var QuestionStatuses = []string{StatusUnanswered, StatusAnswered, StatusImportant}

// IsValidQuestionStatus reports whether s is one of the question statuses.
func IsValidQuestionStatus(s string) bool {
	switch s {
	case StatusUnanswered, StatusAnswered, StatusImportant:
		return true
	}
	return false
}

// Question is a student sticky note on a classroom board.
//
// Invariant: Status is "answered" exactly when TAAnswer is non-nil,
// except that a teacher may override an answered question to "important";
// answering again sets it back to "answered".
type Question struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text        string             `bson:"question" json:"question"`
	Author      string             `bson:"author" json:"author"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	ClassroomID primitive.ObjectID `bson:"classroom_id" json:"classroomId"`
	TAAnswer    *TAAnswer          `bson:"ta_answer,omitempty" json:"taAnswer,omitempty"`
}

// TAAnswer is the answer a TA attached to a question. AnsweredBy is set
// once at answer time and never changes; only that TA may edit the
// answer afterwards.
type TAAnswer struct {
	Answer      string             `bson:"answer" json:"answer"`
	AnsweredBy  primitive.ObjectID `bson:"answered_by" json:"answeredBy"`
	AnsweredAt  time.Time          `bson:"answered_at" json:"answeredAt"`
	Attachments []Attachment       `bson:"attachments,omitempty" json:"attachments,omitempty"`
}

// Attachment records one uploaded file on a TA answer. Filename is the
// generated storage name, OriginalName what the client sent, Path the
// location within the blob store, Size the byte count. Updating an
// answer with new files replaces the whole list.
type Attachment struct {
	Filename     string `bson:"filename" json:"filename"`
	OriginalName string `bson:"original_name" json:"originalName"`
	Path         string `bson:"path" json:"path"`
	Size         int64  `bson:"size" json:"size"`
}

// AnswererSummary is the joined answeredBy shape in question listings.
type AnswererSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"full_name" json:"fullName"`
}
