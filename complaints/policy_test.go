package complaints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/complaints"
	"societypro-be/models"
)

func TestCanAccessOwnership(t *testing.T) {
	ownerID := primitive.NewObjectID()
	complaint := &models.Complaint{RaisedBy: ownerID, RaisedByType: models.RaisedByResident}

	owner := complaints.Principal{ID: ownerID, Role: "resident"}
	stranger := complaints.Principal{ID: primitive.NewObjectID(), Role: "resident"}

	for _, action := range []complaints.Action{complaints.ActionRead, complaints.ActionUpdate, complaints.ActionDelete} {
		assert.True(t, complaints.CanAccess(owner, complaint, action))
		assert.False(t, complaints.CanAccess(stranger, complaint, action))
	}
}

func TestCanAccessTrialOwnerMatchesOnID(t *testing.T) {
	// The flag does not matter for ownership; the ID does.
	ownerID := primitive.NewObjectID()
	complaint := &models.Complaint{RaisedBy: ownerID, RaisedByType: models.RaisedByFreeTrial}

	trialOwner := complaints.Principal{ID: ownerID, Role: "resident", IsFreeTrial: true}
	assert.True(t, complaints.CanAccess(trialOwner, complaint, complaints.ActionRead))
}

func TestCanAccessAdminBypassesOwnership(t *testing.T) {
	complaint := &models.Complaint{RaisedBy: primitive.NewObjectID(), RaisedByType: models.RaisedByResident}

	for _, role := range []string{"community_admin", "super_admin"} {
		p := complaints.Principal{ID: primitive.NewObjectID(), Role: role}
		assert.True(t, complaints.CanAccess(p, complaint, complaints.ActionDelete), role)
	}
}

func TestCanAccessUnknownRoleDenied(t *testing.T) {
	complaint := &models.Complaint{RaisedBy: primitive.NewObjectID()}

	for _, role := range []string{"security_guard", "visitor", ""} {
		p := complaints.Principal{ID: complaint.RaisedBy, Role: role}
		assert.False(t, complaints.CanAccess(p, complaint, complaints.ActionRead), role)
	}
}
