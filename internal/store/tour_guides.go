package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
)

type TourGuides struct {
	col     *mongo.Collection
	timeout time.Duration
	log     *logrus.Logger
}

func NewTourGuides(col *mongo.Collection, timeout time.Duration, log *logrus.Logger) *TourGuides {
	return &TourGuides{col: col, timeout: timeout, log: log}
}

// Create inserts a new listing. Every listing starts pending regardless of input.
func (s *TourGuides) Create(ctx context.Context, guide models.Document) (*models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := models.NewListing(guide)

	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert guide: %w", err)
	}
	return insertResult(res), nil
}

func (s *TourGuides) List(ctx context.Context) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find guides: %w", err)
	}
	docs, err := all(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("decode guides: %w", err)
	}
	return docs, nil
}

func (s *TourGuides) FindByID(ctx context.Context, id string) (models.Document, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc models.Document
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find guide: %w", err)
	}
	return doc, nil
}

// Update applies a partial $set. Status only moves through Approve.
func (s *TourGuides) Update(ctx context.Context, id string, fields models.Document) (*models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := models.ListingFields(fields)
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update guide: %w", err)
	}
	return updateResult(res), nil
}

func (s *TourGuides) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete guide: %w", err)
	}
	return deleteResult(res), nil
}

func (s *TourGuides) Approve(ctx context.Context, id string) (*models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{models.GuideStatusField: models.GuideStatusApproved}},
	)
	if err != nil {
		return nil, fmt.Errorf("approve guide: %w", err)
	}
	if res.ModifiedCount > 0 {
		s.log.WithField("guide_id", id).Info("guide approved")
	}
	return updateResult(res), nil
}
