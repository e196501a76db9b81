package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// GuardShift enum
type GuardShift string

const (
	ShiftMorning GuardShift = "morning"
	ShiftEvening GuardShift = "evening"
	ShiftNight   GuardShift = "night"
	ShiftGeneral GuardShift = "general"
)

func ValidShift(s string) bool {
	switch GuardShift(s) {
	case ShiftMorning, ShiftEvening, ShiftNight, ShiftGeneral:
		return true
	}
	return false
}

// SecurityGuard is gate staff employed by a society, created by its
// community admin.
type SecurityGuard struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Password   string             `bson:"password,omitempty" json:"-"`
	EmployeeID string             `bson:"employeeId" json:"employeeId"`
	Role       string             `bson:"role" json:"role"`
	Society    primitive.ObjectID `bson:"society" json:"society"`
	CreatedBy  primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Shift      GuardShift         `bson:"shift" json:"shift"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (g *SecurityGuard) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(g.Password), 12)
	if err != nil {
		return err
	}
	g.Password = string(hashed)
	return nil
}

func (g *SecurityGuard) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(g.Password), []byte(candidate))
	return err == nil
}
