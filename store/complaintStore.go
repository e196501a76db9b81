package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"societypro-be/complaints"
	"societypro-be/config"
	"societypro-be/models"
)

// ComplaintStore is the MongoDB implementation of complaints.ComplaintStore.
type ComplaintStore struct {
	col *mongo.Collection
}

func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{col: config.GetCollection("complaints")}
}

func (s *ComplaintStore) Insert(ctx context.Context, c *models.Complaint) error {
	_, err := s.col.InsertOne(ctx, c)
	return err
}

func (s *ComplaintStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	var c models.Complaint
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, complaints.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func raisedByFilter(raisedBy primitive.ObjectID, status string) bson.M {
	filter := bson.M{"raisedBy": raisedBy}
	if status != "" {
		filter["status"] = status
	}
	return filter
}

func (s *ComplaintStore) FindByRaisedBy(ctx context.Context, raisedBy primitive.ObjectID, status string, skip, limit int64) ([]models.Complaint, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, raisedByFilter(raisedBy, status), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Complaint
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *ComplaintStore) CountByRaisedBy(ctx context.Context, raisedBy primitive.ObjectID, status string) (int64, error) {
	return s.col.CountDocuments(ctx, raisedByFilter(raisedBy, status))
}

func (s *ComplaintStore) Replace(ctx context.Context, c *models.Complaint) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (s *ComplaintStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
