package complaints_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/complaints"
	"societypro-be/models"
)

func newTestService(store *fakeComplaintStore, residents *MockResidentFinder, trials *MockFreeTrialFinder, societies *MockSocietyFinder, storage *MockStorage) *complaints.Service {
	resolver := &complaints.Resolver{
		Residents: residents,
		Trials:    trials,
		Societies: societies,
	}
	return complaints.NewService(store, resolver, storage)
}

func activeTrialUser(id primitive.ObjectID) *models.FreeTrialUser {
	return &models.FreeTrialUser{
		ID:          id,
		FullName:    "Asha Verma",
		Phone:       "9876543210",
		SocietyName: "Palm Residency",
		SocietyType: "Gated Community",
		City:        "Pune",
		TrialEndsAt: time.Now().Add(7 * 24 * time.Hour),
		IsActive:    true,
	}
}

func testResident(id, societyID primitive.ObjectID) *models.Resident {
	return &models.Resident{
		ID:         id,
		Name:       "Rohan Mehta",
		Phone:      "9123456780",
		FlatNumber: "B-404",
		Society:    societyID,
		IsActive:   true,
	}
}

func TestCreateResidentComplaint(t *testing.T) {
	store := &fakeComplaintStore{}
	residents := new(MockResidentFinder)
	trials := new(MockFreeTrialFinder)
	societies := new(MockSocietyFinder)
	storage := new(MockStorage)

	residentID := primitive.NewObjectID()
	societyID := primitive.NewObjectID()
	principal := complaints.Principal{ID: residentID, Role: "resident"}

	residents.On("FindResidentByID", mock.Anything, residentID).Return(testResident(residentID, societyID), nil)
	societies.On("FindSocietyByID", mock.Anything, societyID).Return(&models.Society{
		ID:   societyID,
		Name: "Green Meadows",
		City: "Mumbai",
	}, nil)

	svc := newTestService(store, residents, trials, societies, storage)

	view, err := svc.Create(context.Background(), principal, complaints.CreateInput{
		Title:       "  Leaking pipe in kitchen  ",
		Description: "Water drips under the sink all day",
		Category:    "plumbing",
	})
	require.NoError(t, err)

	assert.Equal(t, "Leaking pipe in kitchen", view.Title)
	assert.Equal(t, models.StatusPending, view.Status)
	assert.Equal(t, models.PriorityMedium, view.Priority, "priority should default to medium")
	assert.Empty(t, view.Images)
	assert.Equal(t, models.RaisedByResident, view.RaisedByType)

	// Resident complaints carry a society reference and no snapshot.
	require.NotNil(t, view.Complaint.Society)
	assert.Equal(t, societyID, *view.Complaint.Society)
	assert.Nil(t, view.SocietyInfo)

	assert.Equal(t, "Rohan Mehta", view.RaisedBy.Name)
	assert.Equal(t, "B-404", view.RaisedBy.FlatNumber)
	require.NotNil(t, view.Society)
	assert.Equal(t, "Green Meadows", view.Society.Name)
}

func TestCreateFreeTrialComplaintStoresSnapshot(t *testing.T) {
	store := &fakeComplaintStore{}
	residents := new(MockResidentFinder)
	trials := new(MockFreeTrialFinder)
	societies := new(MockSocietyFinder)
	storage := new(MockStorage)

	trialID := primitive.NewObjectID()
	principal := complaints.Principal{ID: trialID, Role: "resident", IsFreeTrial: true}

	trials.On("FindFreeTrialByID", mock.Anything, trialID).Return(activeTrialUser(trialID), nil)

	svc := newTestService(store, residents, trials, societies, storage)

	view, err := svc.Create(context.Background(), principal, complaints.CreateInput{
		Title:       "Broken gate light",
		Description: "The light at gate 2 has been out for a week",
		Category:    "security",
		Priority:    "high",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RaisedByFreeTrial, view.RaisedByType)

	// Trial complaints carry the snapshot and no reference.
	assert.Nil(t, view.Complaint.Society)
	require.NotNil(t, view.SocietyInfo)
	assert.Equal(t, "Palm Residency", view.SocietyInfo.Name)
	assert.Equal(t, "Pune", view.SocietyInfo.City)

	assert.Equal(t, models.FlatNumberSentinel, view.RaisedBy.FlatNumber)
	require.NotNil(t, view.Society)
	assert.Equal(t, "Palm Residency", view.Society.Name)
	assert.Equal(t, "Pune", view.Society.City)

	societies.AssertNotCalled(t, "FindSocietyByID", mock.Anything, mock.Anything)
}

func TestCreateExpiredTrialRejected(t *testing.T) {
	store := &fakeComplaintStore{}
	trials := new(MockFreeTrialFinder)
	storage := new(MockStorage)

	trialID := primitive.NewObjectID()
	expired := activeTrialUser(trialID)
	expired.TrialEndsAt = time.Now().Add(-time.Hour)
	trials.On("FindFreeTrialByID", mock.Anything, trialID).Return(expired, nil)

	svc := newTestService(store, new(MockResidentFinder), trials, new(MockSocietyFinder), storage)

	_, err := svc.Create(context.Background(),
		complaints.Principal{ID: trialID, Role: "resident", IsFreeTrial: true},
		complaints.CreateInput{Title: "t", Description: "d", Category: "other"})
	assert.ErrorIs(t, err, complaints.ErrTrialExpired)
	assert.Empty(t, store.records)
}

func TestCreateMissingSubmitterRejected(t *testing.T) {
	store := &fakeComplaintStore{}
	residents := new(MockResidentFinder)
	trials := new(MockFreeTrialFinder)
	storage := new(MockStorage)

	residentID := primitive.NewObjectID()
	residents.On("FindResidentByID", mock.Anything, residentID).Return(nil, nil)
	trials.On("FindFreeTrialByID", mock.Anything, residentID).Return(nil, nil)

	svc := newTestService(store, residents, trials, new(MockSocietyFinder), storage)

	_, err := svc.Create(context.Background(),
		complaints.Principal{ID: residentID, Role: "resident"},
		complaints.CreateInput{Title: "t", Description: "d", Category: "other"})
	assert.ErrorIs(t, err, complaints.ErrNotFound)

	_, err = svc.Create(context.Background(),
		complaints.Principal{ID: residentID, Role: "resident", IsFreeTrial: true},
		complaints.CreateInput{Title: "t", Description: "d", Category: "other"})
	assert.ErrorIs(t, err, complaints.ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(&fakeComplaintStore{}, new(MockResidentFinder),
		new(MockFreeTrialFinder), new(MockSocietyFinder), new(MockStorage))
	principal := complaints.Principal{ID: primitive.NewObjectID(), Role: "resident"}

	cases := []complaints.CreateInput{
		{Title: "   ", Description: "d", Category: "other"},
		{Title: "t", Description: "", Category: "other"},
		{Title: "t", Description: "d", Category: ""},
		{Title: "t", Description: "d", Category: "ghosts"},
		{Title: "t", Description: "d", Category: "other", Priority: "extreme"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), principal, in)
		var verr *complaints.ValidationError
		assert.ErrorAs(t, err, &verr, "input %+v", in)
	}
}

func TestCreateRollsBackUploadsOnInsertFailure(t *testing.T) {
	store := &fakeComplaintStore{insertErr: errors.New("write concern error")}
	residents := new(MockResidentFinder)
	societies := new(MockSocietyFinder)
	storage := new(MockStorage)

	residentID := primitive.NewObjectID()
	societyID := primitive.NewObjectID()
	residents.On("FindResidentByID", mock.Anything, residentID).Return(testResident(residentID, societyID), nil)

	files := []complaints.UploadFile{
		{Name: "a.jpg", Data: []byte("a")},
		{Name: "b.jpg", Data: []byte("b")},
		{Name: "c.jpg", Data: []byte("c")},
	}
	for i, f := range files {
		publicID := fmt.Sprintf("complaints/img-%d", i)
		storage.On("Upload", mock.Anything, f).Return(complaints.UploadResult{
			URL:      "https://cdn.example.com/" + publicID,
			PublicID: publicID,
		}, nil).Once()
		storage.On("Delete", mock.Anything, publicID).Return(nil).Once()
	}

	svc := newTestService(store, residents, new(MockFreeTrialFinder), societies, storage)

	_, err := svc.Create(context.Background(),
		complaints.Principal{ID: residentID, Role: "resident"},
		complaints.CreateInput{Title: "t", Description: "d", Category: "other", Files: files})
	require.Error(t, err)

	// Every uploaded image must have been deleted again.
	storage.AssertExpectations(t)
	assert.Empty(t, store.records)
}

func TestListMinePagination(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	for i := 0; i < 25; i++ {
		store.records = append(store.records, models.Complaint{
			ID:           primitive.NewObjectID(),
			Title:        fmt.Sprintf("complaint %d", i),
			Status:       models.StatusPending,
			RaisedBy:     ownerID,
			RaisedByType: models.RaisedByFreeTrial,
			SocietyInfo:  &models.SocietySnapshot{Name: "Palm Residency"},
		})
	}

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), new(MockStorage))
	principal := complaints.Principal{ID: ownerID, Role: "resident", IsFreeTrial: true}

	items, page, err := svc.ListMine(context.Background(), principal, "", 3, 10)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, complaints.Page{CurrentPage: 3, TotalPages: 3, TotalCount: 25}, page)

	// Out-of-range pages are empty but still report the real totals.
	items, page, err = svc.ListMine(context.Background(), principal, "", 9, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(25), page.TotalCount)
}

func TestListMineStatusFilter(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	for _, status := range []models.ComplaintStatus{models.StatusPending, models.StatusResolved, models.StatusPending} {
		store.records = append(store.records, models.Complaint{
			ID:           primitive.NewObjectID(),
			Status:       status,
			RaisedBy:     ownerID,
			RaisedByType: models.RaisedByResident,
		})
	}

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), new(MockStorage))
	principal := complaints.Principal{ID: ownerID, Role: "resident"}

	items, page, err := svc.ListMine(context.Background(), principal, "pending", 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), page.TotalCount)

	// "all" disables the filter entirely.
	items, _, err = svc.ListMine(context.Background(), principal, "all", 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, _, err = svc.ListMine(context.Background(), principal, "imaginary", 1, 10)
	var verr *complaints.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGetByIDAccessControl(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		RaisedBy:     ownerID,
		RaisedByType: models.RaisedByFreeTrial,
		SocietyInfo:  &models.SocietySnapshot{Name: "Palm Residency"},
	})

	trials := new(MockFreeTrialFinder)
	trials.On("FindFreeTrialByID", mock.Anything, ownerID).Return(activeTrialUser(ownerID), nil)

	svc := newTestService(store, new(MockResidentFinder), trials,
		new(MockSocietyFinder), new(MockStorage))

	// Another resident-class principal is denied.
	_, err := svc.GetByID(context.Background(),
		complaints.Principal{ID: otherID, Role: "resident"}, complaintID.Hex())
	assert.ErrorIs(t, err, complaints.ErrForbidden)

	// The owner and any admin may read.
	view, err := svc.GetByID(context.Background(),
		complaints.Principal{ID: ownerID, Role: "resident", IsFreeTrial: true}, complaintID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", view.RaisedBy.Name)

	_, err = svc.GetByID(context.Background(),
		complaints.Principal{ID: otherID, Role: "community_admin"}, complaintID.Hex())
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(),
		complaints.Principal{ID: ownerID, Role: "resident"}, "not-a-hex-id")
	assert.ErrorIs(t, err, complaints.ErrInvalidID)

	_, err = svc.GetByID(context.Background(),
		complaints.Principal{ID: ownerID, Role: "resident"}, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, complaints.ErrNotFound)
}

func TestUpdateOwnerAllowList(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		Title:        "old title",
		Status:       models.StatusPending,
		Priority:     models.PriorityMedium,
		RaisedBy:     ownerID,
		RaisedByType: models.RaisedByResident,
	})

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), new(MockStorage))

	newTitle := "new title"
	resolved := "resolved"
	notes := "fixed it"
	updated, err := svc.Update(context.Background(),
		complaints.Principal{ID: ownerID, Role: "resident"},
		complaintID.Hex(),
		complaints.UpdateInput{
			Title:           &newTitle,
			Status:          &resolved,
			ResolutionNotes: &notes,
		})
	require.NoError(t, err)

	assert.Equal(t, "new title", updated.Title)

	// Admin-only fields from an owner are silently ignored.
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Empty(t, updated.ResolutionNotes)
	assert.Nil(t, updated.ResolvedAt)
}

func TestUpdateAdminResolution(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		Status:       models.StatusInProgress,
		RaisedBy:     ownerID,
		RaisedByType: models.RaisedByResident,
	})

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), new(MockStorage))
	admin := complaints.Principal{ID: adminID, Role: "community_admin"}

	resolved := "resolved"
	notes := "replaced the valve"
	updated, err := svc.Update(context.Background(), admin, complaintID.Hex(),
		complaints.UpdateInput{Status: &resolved, ResolutionNotes: &notes})
	require.NoError(t, err)

	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.Equal(t, "replaced the valve", updated.ResolutionNotes)
	require.NotNil(t, updated.ResolvedAt)
	firstResolvedAt := *updated.ResolvedAt

	// Re-sending resolved must not move the timestamp.
	updated, err = svc.Update(context.Background(), admin, complaintID.Hex(),
		complaints.UpdateInput{Status: &resolved})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	assert.Equal(t, firstResolvedAt, *updated.ResolvedAt)

	// Other terminal statuses never stamp ResolvedAt.
	store.records[0].ResolvedAt = nil
	closed := "closed"
	updated, err = svc.Update(context.Background(), admin, complaintID.Hex(),
		complaints.UpdateInput{Status: &closed})
	require.NoError(t, err)
	assert.Nil(t, updated.ResolvedAt)
}

func TestUpdateAssignee(t *testing.T) {
	store := &fakeComplaintStore{}
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		RaisedBy:     primitive.NewObjectID(),
		RaisedByType: models.RaisedByResident,
	})

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), new(MockStorage))
	admin := complaints.Principal{ID: primitive.NewObjectID(), Role: "super_admin"}

	assignee := primitive.NewObjectID()
	assigneeHex := assignee.Hex()
	updated, err := svc.Update(context.Background(), admin, complaintID.Hex(),
		complaints.UpdateInput{AssignedTo: &assigneeHex})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, assignee, *updated.AssignedTo)

	// Empty string clears the assignment.
	empty := ""
	updated, err = svc.Update(context.Background(), admin, complaintID.Hex(),
		complaints.UpdateInput{AssignedTo: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedTo)

	bad := "zzz"
	_, err = svc.Update(context.Background(), admin, complaintID.Hex(),
		complaints.UpdateInput{AssignedTo: &bad})
	assert.ErrorIs(t, err, complaints.ErrInvalidID)
}

func TestUpdateImageReplace(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		RaisedBy:     ownerID,
		RaisedByType: models.RaisedByResident,
		Images: []models.ComplaintImage{
			{URL: "https://cdn.example.com/old", PublicID: "complaints/old"},
		},
	})

	storage := new(MockStorage)
	storage.On("Delete", mock.Anything, "complaints/old").Return(nil).Once()
	newFile := complaints.UploadFile{Name: "new.jpg", Data: []byte("n")}
	storage.On("Upload", mock.Anything, newFile).Return(complaints.UploadResult{
		URL:      "https://cdn.example.com/new",
		PublicID: "complaints/new",
	}, nil).Once()

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), storage)

	updated, err := svc.Update(context.Background(),
		complaints.Principal{ID: ownerID, Role: "resident"},
		complaintID.Hex(),
		complaints.UpdateInput{Files: complaints.FileOps{
			Remove: []string{"complaints/old"},
			Add:    []complaints.UploadFile{newFile},
		}})
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, "complaints/new", updated.Images[0].PublicID)
	storage.AssertExpectations(t)
}

func TestDeleteDetachesImages(t *testing.T) {
	store := &fakeComplaintStore{}
	ownerID := primitive.NewObjectID()
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		RaisedBy:     ownerID,
		RaisedByType: models.RaisedByResident,
		Images: []models.ComplaintImage{
			{PublicID: "complaints/one"},
			{PublicID: "complaints/two"},
		},
	})

	storage := new(MockStorage)
	storage.On("Delete", mock.Anything, "complaints/one").Return(nil).Once()
	// Storage failures do not block the record deletion.
	storage.On("Delete", mock.Anything, "complaints/two").Return(errors.New("gone already")).Once()

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), storage)

	err := svc.Delete(context.Background(),
		complaints.Principal{ID: ownerID, Role: "resident"}, complaintID.Hex())
	require.NoError(t, err)

	assert.Empty(t, store.records)
	storage.AssertExpectations(t)
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	store := &fakeComplaintStore{}
	complaintID := primitive.NewObjectID()
	store.records = append(store.records, models.Complaint{
		ID:           complaintID,
		RaisedBy:     primitive.NewObjectID(),
		RaisedByType: models.RaisedByResident,
	})

	svc := newTestService(store, new(MockResidentFinder), new(MockFreeTrialFinder),
		new(MockSocietyFinder), new(MockStorage))

	err := svc.Delete(context.Background(),
		complaints.Principal{ID: primitive.NewObjectID(), Role: "resident"}, complaintID.Hex())
	assert.ErrorIs(t, err, complaints.ErrForbidden)
	assert.Len(t, store.records, 1)
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, complaints.Page{CurrentPage: 1, TotalPages: 0, TotalCount: 0}, complaints.NewPage(1, 10, 0))
	assert.Equal(t, complaints.Page{CurrentPage: 2, TotalPages: 3, TotalCount: 21}, complaints.NewPage(2, 10, 21))
	assert.Equal(t, complaints.Page{CurrentPage: 1, TotalPages: 2, TotalCount: 20}, complaints.NewPage(1, 10, 20))
}
