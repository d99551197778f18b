package teacherstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateUsername is returned when creating a teacher whose username
// already exists.
var ErrDuplicateUsername = errors.New("a teacher with this username already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teachers")}
}

// GetByID loads a teacher by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByUsername looks up a teacher by case-insensitive username.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	var t models.Teacher
	filter := bson.M{"username_ci": text.Fold(strings.TrimSpace(username))}
	if err := s.c.FindOne(ctx, filter).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByGoogleEmail looks up a Google-authenticated teacher by normalized
// email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByGoogleEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var t models.Teacher
	filter := bson.M{"email": email, "auth_method": "google"}
	if err := s.c.FindOne(ctx, filter).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new teacher after normalizing fields. The caller
// supplies PasswordHash already hashed; this store never sees plaintext.
func (s *Store) Create(ctx context.Context, t models.Teacher) (models.Teacher, error) {
	t.ID = primitive.NewObjectID()
	t.Username = strings.TrimSpace(t.Username)
	t.UsernameCI = text.Fold(t.Username)
	if t.AuthMethod == "" {
		t.AuthMethod = "password"
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Teacher{}, ErrDuplicateUsername
		}
		return models.Teacher{}, err
	}
	return t, nil
}

// EnsureIndexes creates the unique username index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_ci", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_teacher_username"),
	})
	return err
}
