package complaints

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/models"
)

// Principal is the resolved caller identity supplied by the auth middleware.
type Principal struct {
	ID          primitive.ObjectID
	Role        string
	IsFreeTrial bool
}

// AdminRole reports whether the role may act on any complaint, bypassing
// ownership checks.
func AdminRole(role string) bool {
	return role == "community_admin" || role == "super_admin"
}

// ResidentRole reports whether the role is resident-class. Free trial users
// authenticate with role "resident" plus the IsFreeTrial flag.
func ResidentRole(role string) bool {
	return role == "resident"
}

// ComplaintStore is the persistence contract the service needs for the
// complaint collection.
type ComplaintStore interface {
	Insert(ctx context.Context, c *models.Complaint) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error)
	FindByRaisedBy(ctx context.Context, raisedBy primitive.ObjectID, status string, skip, limit int64) ([]models.Complaint, error)
	CountByRaisedBy(ctx context.Context, raisedBy primitive.ObjectID, status string) (int64, error)
	Replace(ctx context.Context, c *models.Complaint) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ResidentFinder looks up resident records. A missing record is (nil, nil),
// not an error.
type ResidentFinder interface {
	FindResidentByID(ctx context.Context, id primitive.ObjectID) (*models.Resident, error)
}

// FreeTrialFinder looks up free trial accounts. A missing record is
// (nil, nil); trial accounts may be purged while their complaints remain.
type FreeTrialFinder interface {
	FindFreeTrialByID(ctx context.Context, id primitive.ObjectID) (*models.FreeTrialUser, error)
}

// SocietyFinder looks up society records for populating resident complaints.
type SocietyFinder interface {
	FindSocietyByID(ctx context.Context, id primitive.ObjectID) (*models.Society, error)
}

// UploadFile is one in-memory file from a multipart request.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult is what object storage reports back for one upload.
type UploadResult struct {
	URL      string
	PublicID string
}

// ObjectStorage is the external image hosting contract.
type ObjectStorage interface {
	Upload(ctx context.Context, file UploadFile) (UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
