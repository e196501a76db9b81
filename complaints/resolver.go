package complaints

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/models"
)

// PlaceholderSocietyName is shown when a free trial complaint has no stored
// society snapshot.
const PlaceholderSocietyName = "Demo Society"

// SubmitterView is the normalized identity of whoever raised a complaint,
// regardless of which collection the account lives in.
type SubmitterView struct {
	ID         primitive.ObjectID `json:"_id"`
	Name       string             `json:"name"`
	FlatNumber string             `json:"flatNumber"`
	Phone      string             `json:"phone,omitempty"`
}

// SocietyView is the society shown alongside a complaint: a populated
// reference for residents, a reconstructed snapshot for free trial users.
type SocietyView struct {
	ID   *primitive.ObjectID `json:"id,omitempty"`
	Name string              `json:"name"`
	City string              `json:"city,omitempty"`
	Type string              `json:"type,omitempty"`
}

// Resolver is the single place that pattern-matches on raisedByType. Every
// read path goes through it instead of branching on the tag itself.
type Resolver struct {
	Residents ResidentFinder
	Trials    FreeTrialFinder
	Societies SocietyFinder
}

// ResolveSubmitter produces the submitter view for a complaint. A missing
// resident is an error; a missing free trial account degrades to a
// placeholder because trial accounts may be purged while their complaints
// remain readable.
func (r *Resolver) ResolveSubmitter(ctx context.Context, id primitive.ObjectID, kind models.RaisedByType) (SubmitterView, error) {
	if kind == models.RaisedByFreeTrial {
		trial, err := r.Trials.FindFreeTrialByID(ctx, id)
		if err != nil {
			return SubmitterView{}, err
		}
		if trial == nil {
			return SubmitterView{
				Name:       "Free Trial User",
				FlatNumber: models.FlatNumberSentinel,
			}, nil
		}
		return SubmitterView{
			ID:         trial.ID,
			Name:       trial.FullName,
			FlatNumber: models.FlatNumberSentinel,
			Phone:      trial.Phone,
		}, nil
	}

	resident, err := r.Residents.FindResidentByID(ctx, id)
	if err != nil {
		return SubmitterView{}, err
	}
	if resident == nil {
		return SubmitterView{}, ErrNotFound
	}
	return SubmitterView{
		ID:         resident.ID,
		Name:       resident.Name,
		FlatNumber: resident.FlatNumber,
		Phone:      resident.Phone,
	}, nil
}

// ResolveSociety produces the society view for a complaint. Free trial
// complaints use the stored snapshot, falling back to a fixed placeholder.
// Resident complaints populate the referenced society record.
func (r *Resolver) ResolveSociety(ctx context.Context, c *models.Complaint) *SocietyView {
	if c.RaisedByType == models.RaisedByFreeTrial {
		if c.SocietyInfo == nil || c.SocietyInfo.Name == "" {
			return &SocietyView{Name: PlaceholderSocietyName}
		}
		return &SocietyView{
			Name: c.SocietyInfo.Name,
			City: c.SocietyInfo.City,
			Type: c.SocietyInfo.Type,
		}
	}

	if c.Society == nil {
		return nil
	}
	society, err := r.Societies.FindSocietyByID(ctx, *c.Society)
	if err != nil || society == nil {
		return &SocietyView{ID: c.Society}
	}
	return &SocietyView{
		ID:   &society.ID,
		Name: society.Name,
		City: society.City,
	}
}
