package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"societypro-be/config"
	"societypro-be/models"
)

// Read-only lookups used by the complaint identity resolver. A missing
// record comes back as (nil, nil) so read paths can degrade instead of
// erroring.

type ResidentFinder struct {
	col *mongo.Collection
}

func NewResidentFinder() *ResidentFinder {
	return &ResidentFinder{col: config.GetCollection("residents")}
}

func (f *ResidentFinder) FindResidentByID(ctx context.Context, id primitive.ObjectID) (*models.Resident, error) {
	var r models.Resident
	err := f.col.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

type FreeTrialFinder struct {
	col *mongo.Collection
}

func NewFreeTrialFinder() *FreeTrialFinder {
	return &FreeTrialFinder{col: config.GetCollection("freetrialusers")}
}

func (f *FreeTrialFinder) FindFreeTrialByID(ctx context.Context, id primitive.ObjectID) (*models.FreeTrialUser, error) {
	var u models.FreeTrialUser
	err := f.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

type SocietyFinder struct {
	col *mongo.Collection
}

func NewSocietyFinder() *SocietyFinder {
	return &SocietyFinder{col: config.GetCollection("societies")}
}

func (f *SocietyFinder) FindSocietyByID(ctx context.Context, id primitive.ObjectID) (*models.Society, error) {
	var s models.Society
	err := f.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
