package complaints_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/complaints"
	"societypro-be/models"
)

func TestResolveSubmitterPurgedTrialAccount(t *testing.T) {
	trials := new(MockFreeTrialFinder)
	trialID := primitive.NewObjectID()
	trials.On("FindFreeTrialByID", mock.Anything, trialID).Return(nil, nil)

	r := &complaints.Resolver{Trials: trials}

	view, err := r.ResolveSubmitter(context.Background(), trialID, models.RaisedByFreeTrial)
	require.NoError(t, err, "a purged trial account must not break complaint reads")
	assert.Equal(t, "Free Trial User", view.Name)
	assert.Equal(t, models.FlatNumberSentinel, view.FlatNumber)
}

func TestResolveSubmitterMissingResidentIsAnError(t *testing.T) {
	residents := new(MockResidentFinder)
	residentID := primitive.NewObjectID()
	residents.On("FindResidentByID", mock.Anything, residentID).Return(nil, nil)

	r := &complaints.Resolver{Residents: residents}

	_, err := r.ResolveSubmitter(context.Background(), residentID, models.RaisedByResident)
	assert.ErrorIs(t, err, complaints.ErrNotFound)
}

func TestResolveSubmitterTrialUsesSentinelFlat(t *testing.T) {
	trials := new(MockFreeTrialFinder)
	trialID := primitive.NewObjectID()
	trials.On("FindFreeTrialByID", mock.Anything, trialID).Return(activeTrialUser(trialID), nil)

	r := &complaints.Resolver{Trials: trials}

	view, err := r.ResolveSubmitter(context.Background(), trialID, models.RaisedByFreeTrial)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", view.Name)
	assert.Equal(t, models.FlatNumberSentinel, view.FlatNumber)
}

func TestResolveSocietyTrialSnapshot(t *testing.T) {
	r := &complaints.Resolver{}

	c := &models.Complaint{
		RaisedByType: models.RaisedByFreeTrial,
		SocietyInfo:  &models.SocietySnapshot{Name: "Palm Residency", City: "Pune", Type: "Gated Community"},
	}
	view := r.ResolveSociety(context.Background(), c)
	require.NotNil(t, view)
	assert.Nil(t, view.ID)
	assert.Equal(t, "Palm Residency", view.Name)
	assert.Equal(t, "Pune", view.City)

	// No snapshot degrades to the fixed placeholder.
	view = r.ResolveSociety(context.Background(), &models.Complaint{RaisedByType: models.RaisedByFreeTrial})
	require.NotNil(t, view)
	assert.Equal(t, complaints.PlaceholderSocietyName, view.Name)
}

func TestResolveSocietyResidentReference(t *testing.T) {
	societies := new(MockSocietyFinder)
	societyID := primitive.NewObjectID()
	societies.On("FindSocietyByID", mock.Anything, societyID).Return(&models.Society{
		ID:   societyID,
		Name: "Green Meadows",
		City: "Mumbai",
	}, nil)

	r := &complaints.Resolver{Societies: societies}

	c := &models.Complaint{RaisedByType: models.RaisedByResident, Society: &societyID}
	view := r.ResolveSociety(context.Background(), c)
	require.NotNil(t, view)
	require.NotNil(t, view.ID)
	assert.Equal(t, societyID, *view.ID)
	assert.Equal(t, "Green Meadows", view.Name)

	// A missing referenced record keeps the id so the client is not lied to.
	gone := primitive.NewObjectID()
	societies.On("FindSocietyByID", mock.Anything, gone).Return(nil, errors.New("connection reset"))
	view = r.ResolveSociety(context.Background(), &models.Complaint{
		RaisedByType: models.RaisedByResident,
		Society:      &gone,
	})
	require.NotNil(t, view)
	assert.Equal(t, &gone, view.ID)
	assert.Empty(t, view.Name)

	// No reference at all means no society block in the response.
	assert.Nil(t, r.ResolveSociety(context.Background(), &models.Complaint{RaisedByType: models.RaisedByResident}))
}
