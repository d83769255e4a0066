package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
)

type Bookings struct {
	col     *mongo.Collection
	timeout time.Duration
	log     *logrus.Logger
}

func NewBookings(col *mongo.Collection, timeout time.Duration, log *logrus.Logger) *Bookings {
	return &Bookings{col: col, timeout: timeout, log: log}
}

func (s *Bookings) Create(ctx context.Context, booking models.Document) (*models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, models.Fields(booking))
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return insertResult(res), nil
}

// List returns bookings for email, or every booking when email is empty.
func (s *Bookings) List(ctx context.Context, email string) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter[models.BookingEmailField] = email
	}
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	docs, err := all(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return docs, nil
}
