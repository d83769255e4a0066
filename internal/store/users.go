package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
)

type Users struct {
	col     *mongo.Collection
	timeout time.Duration
	log     *logrus.Logger
}

func NewUsers(col *mongo.Collection, timeout time.Duration, log *logrus.Logger) *Users {
	return &Users{col: col, timeout: timeout, log: log}
}

func (s *Users) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: models.UserEmailField, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	return nil
}

// Upsert writes profile fields for email in a single round trip. Role is never
// taken from fields; new users start as default.
func (s *Users) Upsert(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	set := models.ProfileFields(fields)
	set[models.UserEmailField] = email

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{models.UserRoleField: models.RoleDefault},
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{models.UserEmailField: email},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	if res.UpsertedCount > 0 {
		s.log.WithField("email", email).Info("user created")
	}
	return updateResult(res), nil
}

// EnsureRole upserts email with the given role, used to seed admins.
func (s *Users) EnsureRole(ctx context.Context, email string, role models.Role) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.col.UpdateOne(ctx,
		bson.M{models.UserEmailField: email},
		bson.M{"$set": bson.M{models.UserEmailField: email, models.UserRoleField: role}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("ensure role for %s: %w", email, err)
	}
	return nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc models.Document
	err := s.col.FindOne(ctx, bson.M{models.UserEmailField: email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc, nil
}

func (s *Users) UpdateRole(ctx context.Context, email string, role models.Role) (*models.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{models.UserEmailField: email},
		bson.M{"$set": bson.M{models.UserRoleField: role}},
	)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return updateResult(res), nil
}

// RoleOf returns the stored role for email. Users without a role field are default.
func (s *Users) RoleOf(ctx context.Context, email string) (models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var u struct {
		Role models.Role `bson:"role"`
	}
	err := s.col.FindOne(ctx,
		bson.M{models.UserEmailField: email},
		options.FindOne().SetProjection(bson.M{models.UserRoleField: 1}),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find role: %w", err)
	}
	if u.Role == "" {
		return models.RoleDefault, nil
	}
	return u.Role, nil
}
