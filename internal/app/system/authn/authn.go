// Package authn is the single credential authenticator for both
// principal types. The teacher-vs-TA trial order and the session
// serialization contract ({id, role}) live here and nowhere else, so a
// session is recognized the same way no matter which login endpoint
// created it.
package authn

import (
	"context"
	"errors"
	"time"

	tastore "github.com/dalemusser/noteboard/internal/app/store/tas"
	teacherstore "github.com/dalemusser/noteboard/internal/app/store/teachers"
	"github.com/dalemusser/noteboard/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Role tags carried in sessions and on principals.
const (
	RoleTeacher = "teacher"
	RoleTA      = "ta"
)

// ErrInvalidCredentials is the uniform failure for any login miss. It
// deliberately does not say whether the account exists, which principal
// type was tried, or which field was wrong.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// Principal is the tagged union of an authenticated teacher or TA.
type Principal struct {
	ID       primitive.ObjectID
	Role     string
	Username string
	FullName string
	Email    string
}

// resolver is one credential lookup in the fixed trial order. It returns
// the candidate principal and its stored hash, or found=false when no
// record matches the login string.
type resolver func(ctx context.Context, login string) (Principal, string, bool, error)

// Authenticator verifies credentials and re-resolves session principals.
type Authenticator struct {
	teachers *teacherstore.Store
	tas      *tastore.Store
	log      *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		teachers: teacherstore.New(db),
		tas:      tastore.New(db),
		log:      logger,
	}
}

// Authenticate checks the login string against each principal type in
// order: teacher by username first, then active TA by username-or-email.
// A found record whose hash does not match the password does not stop
// the trial; the next resolver still runs. Any miss across both types
// yields ErrInvalidCredentials. On TA success the last-login timestamp
// is updated as a side effect.
func (a *Authenticator) Authenticate(ctx context.Context, login, password string) (Principal, error) {
	for _, res := range a.resolvers() {
		p, hash, found, err := res(ctx, login)
		if err != nil {
			return Principal{}, err
		}
		if !found {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
			continue
		}

		if p.Role == RoleTA {
			if err := a.tas.TouchLastLogin(ctx, p.ID, time.Now()); err != nil {
				// Login still succeeds; the timestamp is bookkeeping.
				a.log.Warn("failed to update TA last_login",
					zap.String("ta_id", p.ID.Hex()), zap.Error(err))
			}
		}
		return p, nil
	}
	return Principal{}, ErrInvalidCredentials
}

// resolvers returns the trial order as data so tests can pin it down.
func (a *Authenticator) resolvers() []resolver {
	return []resolver{a.resolveTeacher, a.resolveTA}
}

func (a *Authenticator) resolveTeacher(ctx context.Context, login string) (Principal, string, bool, error) {
	t, err := a.teachers.GetByUsername(ctx, login)
	if err == mongo.ErrNoDocuments {
		return Principal{}, "", false, nil
	}
	if err != nil {
		return Principal{}, "", false, err
	}
	p := Principal{
		ID:       t.ID,
		Role:     RoleTeacher,
		Username: t.Username,
		Email:    t.Email,
	}
	return p, t.PasswordHash, true, nil
}

func (a *Authenticator) resolveTA(ctx context.Context, login string) (Principal, string, bool, error) {
	ta, err := a.tas.GetActiveByLogin(ctx, login)
	if err == mongo.ErrNoDocuments {
		return Principal{}, "", false, nil
	}
	if err != nil {
		return Principal{}, "", false, err
	}
	p := Principal{
		ID:       ta.ID,
		Role:     RoleTA,
		Username: ta.Username,
		FullName: ta.FullName,
		Email:    ta.Email,
	}
	return p, ta.PasswordHash, true, nil
}

// Resolve rebuilds the session principal from its stored {id, role}
// pair. A principal that no longer exists, or a TA that has been
// deactivated, resolves to nil (treated as signed out upstream), never
// as a server error. This is the SessionManager's PrincipalResolver.
func (a *Authenticator) Resolve(ctx context.Context, id, role string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed id in a validly signed cookie means session
		// corruption; fail closed.
		return nil, nil
	}

	switch role {
	case RoleTeacher:
		t, err := a.teachers.GetByID(ctx, oid)
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &auth.SessionUser{
			ID:       t.ID.Hex(),
			Username: t.Username,
			Role:     RoleTeacher,
		}, nil

	case RoleTA:
		ta, err := a.tas.GetByID(ctx, oid)
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !ta.IsActive {
			return nil, nil
		}
		return &auth.SessionUser{
			ID:       ta.ID.Hex(),
			Username: ta.Username,
			FullName: ta.FullName,
			Role:     RoleTA,
		}, nil
	}

	return nil, nil
}

// HashPassword hashes a plaintext password for storage. bcrypt's default
// cost (10) satisfies the slow-hash requirement.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
