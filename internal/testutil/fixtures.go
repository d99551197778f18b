package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// HashPassword bcrypt-hashes a password at the minimum cost. Test data
// does not need slow hashes.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return string(b)
}

// CreateTeacher creates a test teacher account.
func (f *Fixtures) CreateTeacher(ctx context.Context, username, password string) models.Teacher {
	f.t.Helper()

	now := time.Now().UTC()
	teacher := models.Teacher{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		PasswordHash: HashPassword(f.t, password),
		AuthMethod:   "password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("teachers").InsertOne(ctx, teacher); err != nil {
		f.t.Fatalf("failed to create test teacher: %v", err)
	}
	return teacher
}

// CreateTA creates an active test teaching assistant.
func (f *Fixtures) CreateTA(ctx context.Context, username, email, password string) models.TeachingAssistant {
	f.t.Helper()

	now := time.Now().UTC()
	ta := models.TeachingAssistant{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Email:        email,
		PasswordHash: HashPassword(f.t, password),
		FullName:     "Test Assistant",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("teaching_assistants").InsertOne(ctx, ta); err != nil {
		f.t.Fatalf("failed to create test TA: %v", err)
	}
	return ta
}

// CreateClassroom creates a test classroom owned by the given teacher.
func (f *Fixtures) CreateClassroom(ctx context.Context, name, code string, teacherID primitive.ObjectID) models.Classroom {
	f.t.Helper()

	classroom := models.Classroom{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Code:      code,
		TeacherID: teacherID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("classrooms").InsertOne(ctx, classroom); err != nil {
		f.t.Fatalf("failed to create test classroom: %v", err)
	}
	return classroom
}

// CreateQuestion creates an unanswered question in the given classroom.
func (f *Fixtures) CreateQuestion(ctx context.Context, classroomID primitive.ObjectID, text, author string) models.Question {
	f.t.Helper()

	q := models.Question{
		ID:          primitive.NewObjectID(),
		Text:        text,
		Author:      author,
		Color:       "#fef3c7",
		Category:    "general",
		Status:      models.StatusUnanswered,
		Timestamp:   time.Now().UTC(),
		ClassroomID: classroomID,
	}

	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateAnsweredQuestion creates a question already answered by the given TA.
func (f *Fixtures) CreateAnsweredQuestion(ctx context.Context, classroomID, taID primitive.ObjectID, text, answer string) models.Question {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.Question{
		ID:          primitive.NewObjectID(),
		Text:        text,
		Author:      "Student",
		Color:       "#fef3c7",
		Category:    "general",
		Status:      models.StatusAnswered,
		Timestamp:   now,
		ClassroomID: classroomID,
		TAAnswer: &models.TAAnswer{
			Answer:     answer,
			AnsweredBy: taID,
			AnsweredAt: now,
		},
	}

	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create answered test question: %v", err)
	}
	return q
}
