// Package store holds the MongoDB accessors, one per collection.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/db"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
	// ErrEmptyUpdate means nothing writable was left after dropping protected fields.
	ErrEmptyUpdate = errors.New("empty update")
)

// Store groups the accessors sharing one database handle.
type Store struct {
	Users      *Users
	TourGuides *TourGuides
	Bookings   *Bookings
}

func New(database *mongo.Database, timeout time.Duration, log *logrus.Logger) *Store {
	return &Store{
		Users:      NewUsers(database.Collection(db.UsersCollection), timeout, log),
		TourGuides: NewTourGuides(database.Collection(db.TourGuidesCollection), timeout, log),
		Bookings:   NewBookings(database.Collection(db.BookingsCollection), timeout, log),
	}
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

func insertResult(r *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{Acknowledged: true, InsertedID: r.InsertedID}
}

func updateResult(r *mongo.UpdateResult) *models.UpdateResult {
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
		UpsertedCount: r.UpsertedCount,
		UpsertedID:    r.UpsertedID,
	}
}

func deleteResult(r *mongo.DeleteResult) *models.DeleteResult {
	return &models.DeleteResult{Acknowledged: true, DeletedCount: r.DeletedCount}
}

// all drains a cursor into a non-nil slice.
func all(ctx context.Context, cur *mongo.Cursor) ([]models.Document, error) {
	defer cur.Close(ctx)
	docs := []models.Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}
