package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TrialDuration is how long a free trial account stays usable after signup.
const TrialDuration = 14 * 24 * time.Hour

// FlatNumberSentinel is the unit label shown for free trial submitters,
// who have no real flat number.
const FlatNumberSentinel = "Trial User"

// SocietyType enum for free trial signups
var ValidSocietyTypes = []string{
	"Residential Apartment",
	"Gated Community",
	"Co-operative Housing",
	"Township",
	"Other",
}

// TotalFlats ranges offered on the signup form
var ValidFlatRanges = []string{"1-50", "51-100", "101-200", "201-500", "501+"}

// FreeTrialUser is a time-boxed evaluation account. It carries its society
// details inline instead of referencing a Society record.
type FreeTrialUser struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	SocietyName       string             `bson:"societyName" json:"societyName"`
	SocietyType       string             `bson:"societyType" json:"societyType"`
	TotalFlats        string             `bson:"totalFlats" json:"totalFlats"`
	City              string             `bson:"city" json:"city"`
	Role              string             `bson:"role" json:"role"`
	Password          string             `bson:"password,omitempty" json:"-"`
	AgreeTerms        bool               `bson:"agreeTerms" json:"agreeTerms"`
	ReceiveUpdates    bool               `bson:"receiveUpdates" json:"receiveUpdates"`
	TrialEndsAt       time.Time          `bson:"trialEndsAt" json:"trialEndsAt"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	EmailVerified     bool               `bson:"emailVerified" json:"emailVerified"`
	VerificationToken string             `bson:"verificationToken,omitempty" json:"-"`
	LastLoginAt       *time.Time         `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	LoginCount        int                `bson:"loginCount" json:"loginCount"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *FreeTrialUser) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), 12)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *FreeTrialUser) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// IsTrialActive reports whether the trial window is still open.
func (u *FreeTrialUser) IsTrialActive() bool {
	return time.Now().Before(u.TrialEndsAt)
}

// TrialDaysRemaining returns whole days left in the trial, never negative.
func (u *FreeTrialUser) TrialDaysRemaining() int {
	diff := time.Until(u.TrialEndsAt)
	if diff <= 0 {
		return 0
	}
	days := int(diff.Hours() / 24)
	if diff.Hours() > float64(days)*24 {
		days++
	}
	return days
}

// CanLogin checks account state; the email verification gate is applied by
// the controller because it is configuration dependent.
func (u *FreeTrialUser) CanLogin() bool {
	return u.IsActive && u.IsTrialActive()
}
