package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Resident is a permanent member of a society, created by a community admin.
type Resident struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Email          string              `bson:"email" json:"email"`
	Phone          string              `bson:"phone" json:"phone"`
	Password       string              `bson:"password,omitempty" json:"-"`
	FlatNumber     string              `bson:"flatNumber" json:"flatNumber"`
	Block          string              `bson:"block,omitempty" json:"block,omitempty"`
	Role           string              `bson:"role" json:"role"`
	Society        primitive.ObjectID  `bson:"society" json:"society"`
	CommunityAdmin *primitive.ObjectID `bson:"communityadmin,omitempty" json:"communityadmin,omitempty"`
	Dues           float64             `bson:"dues" json:"dues"`
	IsOwner        bool                `bson:"isOwner" json:"isOwner"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	ProfileImage   string              `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (r *Resident) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(r.Password), 12)
	if err != nil {
		return err
	}
	r.Password = string(hashed)
	return nil
}

func (r *Resident) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(r.Password), []byte(candidate))
	return err == nil
}
