package questionstore

import (
	"context"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Filter narrows and orders the cross-classroom question list. Status and
// ClassroomID use "all" (or empty) to mean no filter. Page is 1-indexed.
type Filter struct {
	Status      string
	ClassroomID string
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string
}

// sortFields whitelists the fields clients may sort the list by.
// Anything else falls back to timestamp.
var sortFields = map[string]bool{
	"timestamp": true,
	"status":    true,
	"category":  true,
	"author":    true,
}

// ListedQuestion is a question row joined with its classroom summary and,
// when answered, the answering TA's summary.
type ListedQuestion struct {
	ID        primitive.ObjectID       `bson:"_id" json:"id"`
	Text      string                   `bson:"question" json:"question"`
	Author    string                   `bson:"author" json:"author"`
	Color     string                   `bson:"color,omitempty" json:"color,omitempty"`
	Category  string                   `bson:"category,omitempty" json:"category,omitempty"`
	Status    string                   `bson:"status" json:"status"`
	Timestamp time.Time                `bson:"timestamp" json:"timestamp"`
	Classroom *models.ClassroomSummary `bson:"classroom,omitempty" json:"classroom,omitempty"`
	TAAnswer  *listedAnswer            `bson:"ta_answer,omitempty" json:"taAnswer,omitempty"`
}

type listedAnswer struct {
	Answer      string                  `bson:"answer" json:"answer"`
	AnsweredAt  time.Time               `bson:"answered_at" json:"answeredAt"`
	AnsweredBy  *models.AnswererSummary `bson:"answerer,omitempty" json:"answeredBy,omitempty"`
	Attachments []models.Attachment     `bson:"attachments,omitempty" json:"attachments,omitempty"`
}

// List returns one page of questions matching f, joined with classroom
// and answerer summaries, plus the total match count for pagination.
func (s *Store) List(ctx context.Context, f Filter) ([]ListedQuestion, int64, error) {
	match := bson.M{}
	if f.Status != "" && f.Status != "all" {
		match["status"] = f.Status
	}
	if f.ClassroomID != "" && f.ClassroomID != "all" {
		oid, err := primitive.ObjectIDFromHex(f.ClassroomID)
		if err != nil {
			// An unparseable classroom filter matches nothing rather
			// than erroring; the filter UI only offers valid ids.
			return []ListedQuestion{}, 0, nil
		}
		match["classroom_id"] = oid
	}

	total, err := s.c.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	sortBy := f.SortBy
	if !sortFields[sortBy] {
		sortBy = "timestamp"
	}
	order := -1
	if f.SortOrder == "asc" {
		order = 1
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 50
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: order}, {Key: "_id", Value: order}}}},
		bson.D{{Key: "$skip", Value: int64(page-1) * int64(limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "classrooms",
			"localField":   "classroom_id",
			"foreignField": "_id",
			"as":           "classroom",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$classroom",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "teaching_assistants",
			"localField":   "ta_answer.answered_by",
			"foreignField": "_id",
			"as":           "answerer",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$answerer",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"ta_answer.answerer": "$answerer",
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	rows := []ListedQuestion{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}

	// $addFields materializes an empty ta_answer document for rows that
	// never had one; drop those so unanswered questions serialize clean.
	for i := range rows {
		if rows[i].TAAnswer != nil && rows[i].TAAnswer.Answer == "" && rows[i].TAAnswer.AnsweredBy == nil {
			rows[i].TAAnswer = nil
		}
	}

	return rows, total, nil
}
