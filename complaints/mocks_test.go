package complaints_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societypro-be/complaints"
	"societypro-be/models"
)

// MockStorage is a testify mock of the ObjectStorage interface.
type MockStorage struct {
	mock.Mock
	mu sync.Mutex
}

func (m *MockStorage) Upload(ctx context.Context, file complaints.UploadFile) (complaints.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := m.Called(ctx, file)
	return args.Get(0).(complaints.UploadResult), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// MockResidentFinder is a testify mock of the ResidentFinder interface.
type MockResidentFinder struct {
	mock.Mock
}

func (m *MockResidentFinder) FindResidentByID(ctx context.Context, id primitive.ObjectID) (*models.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resident), args.Error(1)
}

// MockFreeTrialFinder is a testify mock of the FreeTrialFinder interface.
type MockFreeTrialFinder struct {
	mock.Mock
}

func (m *MockFreeTrialFinder) FindFreeTrialByID(ctx context.Context, id primitive.ObjectID) (*models.FreeTrialUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FreeTrialUser), args.Error(1)
}

// MockSocietyFinder is a testify mock of the SocietyFinder interface.
type MockSocietyFinder struct {
	mock.Mock
}

func (m *MockSocietyFinder) FindSocietyByID(ctx context.Context, id primitive.ObjectID) (*models.Society, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Society), args.Error(1)
}

// fakeComplaintStore is an in-memory ComplaintStore. It keeps insertion order
// so list tests get deterministic windows.
type fakeComplaintStore struct {
	mu        sync.Mutex
	records   []models.Complaint
	insertErr error
}

func (s *fakeComplaintStore) Insert(_ context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.records = append(s.records, *c)
	return nil
}

func (s *fakeComplaintStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			c := s.records[i]
			return &c, nil
		}
	}
	return nil, complaints.ErrNotFound
}

func (s *fakeComplaintStore) FindByRaisedBy(_ context.Context, raisedBy primitive.ObjectID, status string, skip, limit int64) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.filter(raisedBy, status)
	if skip >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[skip:]
	if limit < int64(len(matched)) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *fakeComplaintStore) CountByRaisedBy(_ context.Context, raisedBy primitive.ObjectID, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filter(raisedBy, status))), nil
}

func (s *fakeComplaintStore) filter(raisedBy primitive.ObjectID, status string) []models.Complaint {
	var matched []models.Complaint
	for _, c := range s.records {
		if c.RaisedBy != raisedBy {
			continue
		}
		if status != "" && string(c.Status) != status {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

func (s *fakeComplaintStore) Replace(_ context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == c.ID {
			s.records[i] = *c
			return nil
		}
	}
	return complaints.ErrNotFound
}

func (s *fakeComplaintStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return complaints.ErrNotFound
}
