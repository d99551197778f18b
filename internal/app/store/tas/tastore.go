package tastore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/noteboard/internal/app/system/normalize"
	"github.com/dalemusser/noteboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateUsername is returned when creating a TA whose username
	// already exists.
	ErrDuplicateUsername = errors.New("Username already exists")
	// ErrDuplicateEmail is returned when creating a TA whose email
	// already exists.
	ErrDuplicateEmail = errors.New("Email already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teaching_assistants")}
}

// GetByID loads a TA by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeachingAssistant, error) {
	var ta models.TeachingAssistant
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ta); err != nil {
		return nil, err
	}
	return &ta, nil
}

// GetActiveByLogin looks up an active TA by username-or-email. The login
// string matches either the folded username or the normalized email, and
// only records with is_active=true are eligible. Returns
// mongo.ErrNoDocuments when nothing matches.
func (s *Store) GetActiveByLogin(ctx context.Context, login string) (*models.TeachingAssistant, error) {
	login = strings.TrimSpace(login)
	filter := bson.M{
		"$or": []bson.M{
			{"username_ci": text.Fold(login)},
			{"email": normalize.Email(login)},
		},
		"is_active": true,
	}

	var ta models.TeachingAssistant
	if err := s.c.FindOne(ctx, filter).Decode(&ta); err != nil {
		return nil, err
	}
	return &ta, nil
}

// Create inserts a new TA after normalizing fields. PasswordHash must be
// pre-hashed by the caller. New TAs are active by default.
func (s *Store) Create(ctx context.Context, ta models.TeachingAssistant) (models.TeachingAssistant, error) {
	ta.ID = primitive.NewObjectID()
	ta.Username = strings.TrimSpace(ta.Username)
	ta.UsernameCI = text.Fold(ta.Username)
	ta.Email = normalize.Email(ta.Email)
	ta.FullName = normalize.Name(ta.FullName)
	ta.IsActive = true

	now := time.Now().UTC()
	ta.CreatedAt = now
	ta.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ta); err != nil {
		if wafflemongo.IsDup(err) {
			// The driver does not say which key collided; re-check the
			// username so the caller gets a field-level message.
			if exists, lookupErr := s.usernameExists(ctx, ta.UsernameCI); lookupErr == nil && exists {
				return models.TeachingAssistant{}, ErrDuplicateUsername
			}
			return models.TeachingAssistant{}, ErrDuplicateEmail
		}
		return models.TeachingAssistant{}, err
	}
	return ta, nil
}

// TouchLastLogin records a successful login time.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"last_login": at.UTC(),
		"updated_at": at.UTC(),
	}})
	return err
}

// SetActive toggles whether a TA may log in. Existing sessions for a
// deactivated TA stop resolving on their next request.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) usernameExists(ctx context.Context, usernameCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"username_ci": usernameCI}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// EnsureIndexes creates the unique username and email indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_ta_username"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_ta_email"),
		},
	})
	return err
}
