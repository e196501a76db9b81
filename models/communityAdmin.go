package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPermissions is granted when a community admin is created
// without an explicit permission list.
var DefaultAdminPermissions = []string{"manage_residents", "manage_complaints", "manage_notices"}

// ValidAdminPermissions is the closed set a community admin may hold.
var ValidAdminPermissions = []string{
	"manage_residents",
	"manage_complaints",
	"manage_notices",
	"manage_payments",
	"manage_amenities",
	"view_reports",
	"manage_staff",
	"manage_events",
}

// CommunityAdmin manages a single society on behalf of the super admin.
type CommunityAdmin struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Phone       string              `bson:"phone" json:"phone"`
	Password    string              `bson:"password,omitempty" json:"-"`
	Role        string              `bson:"role" json:"role"`
	Society     primitive.ObjectID  `bson:"society" json:"society"`
	CreatedBy   *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	Permissions []string            `bson:"permissions" json:"permissions"`
	IsActive    bool                `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (a *CommunityAdmin) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(a.Password), 12)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	return nil
}

func (a *CommunityAdmin) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(candidate))
	return err == nil
}
