package questionstore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("questions")}
}

// Create inserts a student question. Status always starts unanswered and
// the timestamp is set server-side; callers cannot backdate notes.
func (s *Store) Create(ctx context.Context, q models.Question) (models.Question, error) {
	q.ID = primitive.NewObjectID()
	q.Text = strings.TrimSpace(q.Text)
	q.Author = strings.TrimSpace(q.Author)
	q.Status = models.StatusUnanswered
	q.Timestamp = time.Now().UTC()
	q.TAAnswer = nil

	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// GetByID loads a question by ObjectID. Returns mongo.ErrNoDocuments for
// an unknown id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// SetAnswer attaches a TA answer and moves the question to answered.
// This is a single $set so the status/answer pair can never be observed
// half-written. The filter requires ta_answer to still be nil, so
// concurrent first answers cannot overwrite each other: the loser gets
// mongo.ErrNoDocuments and AnsweredBy stays with whoever landed first.
func (s *Store) SetAnswer(ctx context.Context, id primitive.ObjectID, ans models.TAAnswer) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "ta_answer": nil}, bson.M{"$set": bson.M{
		"ta_answer": ans,
		"status":    models.StatusAnswered,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateAnswer rewrites the answer text and timestamp of an existing TA
// answer. When attachments is non-nil the stored list is replaced
// wholesale; nil preserves the prior list verbatim. The caller performs
// the ownership check before calling.
func (s *Store) UpdateAnswer(ctx context.Context, id primitive.ObjectID, answer string, at time.Time, attachments []models.Attachment) error {
	set := bson.M{
		"ta_answer.answer":      answer,
		"ta_answer.answered_at": at.UTC(),
	}
	if attachments != nil {
		set["ta_answer.attachments"] = attachments
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "ta_answer": bson.M{"$ne": nil}}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus overrides the status field directly. Teachers use this to
// pin a question as important (or unpin it back to its answer-derived
// status).
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the indexes the board and dashboard listings
// rely on: per-classroom time ordering and the status filter.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "classroom_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_question_classroom_time"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_question_status"),
		},
	})
	return err
}

// ListByClassroom returns one classroom's questions, newest first, with
// an optional status filter ("all" or empty means no filter).
func (s *Store) ListByClassroom(ctx context.Context, classroomID primitive.ObjectID, status string) ([]models.Question, error) {
	filter := bson.M{"classroom_id": classroomID}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
