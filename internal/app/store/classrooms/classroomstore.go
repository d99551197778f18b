package classroomstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// codeLength is the length of a classroom join code.
const codeLength = 6

// createAttempts bounds retries when a generated join code collides.
const createAttempts = 5

// ErrCodeExhausted is returned when code generation keeps colliding.
// With a 6-char hex-ish code this effectively never happens.
var ErrCodeExhausted = errors.New("could not generate a unique classroom code")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classrooms")}
}

// Create inserts a classroom owned by teacherID with a generated join
// code, retrying on the rare code collision.
func (s *Store) Create(ctx context.Context, name string, teacherID primitive.ObjectID) (models.Classroom, error) {
	for i := 0; i < createAttempts; i++ {
		room := models.Classroom{
			ID:        primitive.NewObjectID(),
			Name:      strings.TrimSpace(name),
			Code:      newCode(),
			TeacherID: teacherID,
			CreatedAt: time.Now().UTC(),
		}
		_, err := s.c.InsertOne(ctx, room)
		if err == nil {
			return room, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Classroom{}, err
		}
	}
	return models.Classroom{}, ErrCodeExhausted
}

// GetByID loads a classroom by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Classroom, error) {
	var room models.Classroom
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByCode resolves a join code to its classroom. Codes are stored
// uppercase; lookup is forgiving about case.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Classroom, error) {
	var room models.Classroom
	filter := bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}
	if err := s.c.FindOne(ctx, filter).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByTeacher returns a teacher's classrooms, newest first.
func (s *Store) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Classroom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"teacher_id": teacherID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.Classroom
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListSummaries returns every classroom as {id, name, code}, sorted by
// name, for building the question-filter UI.
func (s *Store) ListSummaries(ctx context.Context) ([]models.ClassroomSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "code": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.ClassroomSummary
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Count returns the total number of classrooms.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique join-code index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_classroom_code"),
	})
	return err
}

// newCode derives a short join code from a fresh UUID.
func newCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:codeLength])
}
