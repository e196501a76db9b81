package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintCategory enum
type ComplaintCategory string

const (
	CategoryPlumbing    ComplaintCategory = "plumbing"
	CategoryElectrical  ComplaintCategory = "electrical"
	CategoryCleaning    ComplaintCategory = "cleaning"
	CategorySecurity    ComplaintCategory = "security"
	CategoryParking     ComplaintCategory = "parking"
	CategoryElevator    ComplaintCategory = "elevator"
	CategoryCommonArea  ComplaintCategory = "common-area"
	CategoryNoise       ComplaintCategory = "noise"
	CategoryMaintenance ComplaintCategory = "maintenance"
	CategoryOther       ComplaintCategory = "other"
)

// ValidCategory reports whether s is one of the known complaint categories.
func ValidCategory(s string) bool {
	switch ComplaintCategory(s) {
	case CategoryPlumbing, CategoryElectrical, CategoryCleaning, CategorySecurity,
		CategoryParking, CategoryElevator, CategoryCommonArea, CategoryNoise,
		CategoryMaintenance, CategoryOther:
		return true
	}
	return false
}

// ComplaintPriority enum
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
	PriorityUrgent ComplaintPriority = "urgent"
)

func ValidPriority(s string) bool {
	switch ComplaintPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ComplaintStatus enum
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
	StatusClosed     ComplaintStatus = "closed"
)

func ValidStatus(s string) bool {
	switch ComplaintStatus(s) {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// RaisedByType tags which kind of account raised a complaint. It decides
// whether Society (a reference) or SocietyInfo (an inline snapshot) is set,
// and which collection the submitter must be resolved against.
type RaisedByType string

const (
	RaisedByResident  RaisedByType = "resident"
	RaisedByFreeTrial RaisedByType = "free_trial"
)

// ComplaintImage is one attachment hosted in external object storage.
type ComplaintImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

// SocietySnapshot is the denormalized society copy stored on complaints
// raised by free trial users, who have no society record to reference.
type SocietySnapshot struct {
	Name string `bson:"name" json:"name"`
	City string `bson:"city,omitempty" json:"city,omitempty"`
	Type string `bson:"type,omitempty" json:"type,omitempty"`
}

// Complaint represents a maintenance complaint raised by a resident or a
// free trial user. Exactly one of Society / SocietyInfo is populated,
// matching RaisedByType.
type Complaint struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Category        ComplaintCategory   `bson:"category" json:"category"`
	Priority        ComplaintPriority   `bson:"priority" json:"priority"`
	Status          ComplaintStatus     `bson:"status" json:"status"`
	Images          []ComplaintImage    `bson:"images" json:"images"`
	RaisedBy        primitive.ObjectID  `bson:"raisedBy" json:"raisedBy"`
	RaisedByType    RaisedByType        `bson:"raisedByType" json:"raisedByType"`
	Society         *primitive.ObjectID `bson:"society,omitempty" json:"society,omitempty"`
	SocietyInfo     *SocietySnapshot    `bson:"societyInfo,omitempty" json:"societyInfo,omitempty"`
	AssignedTo      *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ResolutionNotes string              `bson:"resolutionNotes,omitempty" json:"resolutionNotes,omitempty"`
	ResolvedAt      *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasImage reports whether the complaint still references publicID.
func (c *Complaint) HasImage(publicID string) bool {
	for _, img := range c.Images {
		if img.PublicID == publicID {
			return true
		}
	}
	return false
}

// RemoveImages drops every image whose public_id is in publicIDs. Removing
// an absent id is a no-op.
func (c *Complaint) RemoveImages(publicIDs []string) {
	if len(publicIDs) == 0 {
		return
	}
	drop := make(map[string]bool, len(publicIDs))
	for _, id := range publicIDs {
		drop[id] = true
	}
	kept := c.Images[:0]
	for _, img := range c.Images {
		if !drop[img.PublicID] {
			kept = append(kept, img)
		}
	}
	c.Images = kept
}
