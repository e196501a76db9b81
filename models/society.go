package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocietyStatus enum
type SocietyStatus string

const (
	SocietyActive   SocietyStatus = "Active"
	SocietyInactive SocietyStatus = "Inactive"
	SocietyPending  SocietyStatus = "Pending"
)

// Society is a registered housing society, managed by the super admin.
type Society struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Address       string             `bson:"address" json:"address"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state" json:"state"`
	Pincode       string             `bson:"pincode" json:"pincode"`
	TotalFlats    int                `bson:"totalFlats" json:"totalFlats"`
	ContactPerson string             `bson:"contactPerson" json:"contactPerson"`
	ContactEmail  string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone  string             `bson:"contactPhone" json:"contactPhone"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	Status        SocietyStatus      `bson:"status" json:"status"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FormattedAddress joins the address parts the way the dashboard shows them.
func (s *Society) FormattedAddress() string {
	return fmt.Sprintf("%s, %s, %s - %s", s.Address, s.City, s.State, s.Pincode)
}
