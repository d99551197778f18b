package questionstore

import (
	"context"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusCounts holds the global question totals by status.
type StatusCounts struct {
	Total      int64 `json:"totalQuestions"`
	Unanswered int64 `json:"unansweredQuestions"`
	Answered   int64 `json:"answeredQuestions"`
	Important  int64 `json:"importantQuestions"`
}

// CategoryCount is one row of the per-category aggregate.
type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

// ClassroomCount is one row of the per-classroom aggregate.
type ClassroomCount struct {
	ClassroomID   primitive.ObjectID `bson:"_id" json:"classroomId"`
	ClassroomName string             `bson:"classroom_name" json:"classroomName"`
	ClassroomCode string             `bson:"classroom_code" json:"classroomCode"`
	Count         int64              `bson:"count" json:"count"`
}

// CountByStatus returns the global totals used by the stats overview.
// Four counts instead of one $facet keeps each query trivial; the board
// is small enough that the extra round trips don't matter.
func (s *Store) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var out StatusCounts
	var err error

	if out.Total, err = s.c.CountDocuments(ctx, bson.M{}); err != nil {
		return StatusCounts{}, err
	}
	if out.Unanswered, err = s.c.CountDocuments(ctx, bson.M{"status": models.StatusUnanswered}); err != nil {
		return StatusCounts{}, err
	}
	if out.Answered, err = s.c.CountDocuments(ctx, bson.M{"status": models.StatusAnswered}); err != nil {
		return StatusCounts{}, err
	}
	if out.Important, err = s.c.CountDocuments(ctx, bson.M{"status": models.StatusImportant}); err != nil {
		return StatusCounts{}, err
	}
	return out, nil
}

// CountByCategory groups questions by category, descending by count.
func (s *Store) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []CategoryCount{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByClassroom groups questions by classroom, joined with the
// classroom's name and code, descending by count. Questions whose
// classroom was deleted are dropped by the $unwind.
func (s *Store) CountByClassroom(ctx context.Context) ([]ClassroomCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "classrooms",
			"localField":   "classroom_id",
			"foreignField": "_id",
			"as":           "classroom",
		}}},
		bson.D{{Key: "$unwind", Value: "$classroom"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            "$classroom_id",
			"classroom_name": bson.M{"$first": "$classroom.name"},
			"classroom_code": bson.M{"$first": "$classroom.code"},
			"count":          bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []ClassroomCount{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
