package complaints_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"societypro-be/complaints"
)

func TestAttachEmptyBatch(t *testing.T) {
	m := &complaints.AttachmentManager{Storage: new(MockStorage)}
	images, err := m.Attach(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, images)
}

func TestAttachPreservesInputOrder(t *testing.T) {
	storage := new(MockStorage)
	files := []complaints.UploadFile{
		{Name: "first.jpg", Data: []byte("1")},
		{Name: "second.jpg", Data: []byte("2")},
		{Name: "third.jpg", Data: []byte("3")},
	}
	for _, f := range files {
		storage.On("Upload", mock.Anything, f).Return(complaints.UploadResult{
			URL:      "https://cdn.example.com/" + f.Name,
			PublicID: "complaints/" + f.Name,
		}, nil).Once()
	}

	m := &complaints.AttachmentManager{Storage: storage}
	images, err := m.Attach(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, images, 3)
	assert.Equal(t, "complaints/first.jpg", images[0].PublicID)
	assert.Equal(t, "complaints/second.jpg", images[1].PublicID)
	assert.Equal(t, "complaints/third.jpg", images[2].PublicID)
	storage.AssertExpectations(t)
}

func TestAttachCleansUpAfterPartialFailure(t *testing.T) {
	storage := new(MockStorage)
	good := complaints.UploadFile{Name: "good.jpg", Data: []byte("g")}
	bad := complaints.UploadFile{Name: "bad.jpg", Data: []byte("b")}

	storage.On("Upload", mock.Anything, good).Return(complaints.UploadResult{
		URL:      "https://cdn.example.com/good",
		PublicID: "complaints/good",
	}, nil).Once()
	storage.On("Upload", mock.Anything, bad).Return(complaints.UploadResult{}, errors.New("storage unavailable")).Once()
	storage.On("Delete", mock.Anything, "complaints/good").Return(nil).Once()

	m := &complaints.AttachmentManager{Storage: storage}
	images, err := m.Attach(context.Background(), []complaints.UploadFile{good, bad})

	assert.Error(t, err)
	assert.Nil(t, images)
	storage.AssertExpectations(t)
}

func TestDetachAbsorbsFailuresAndSkipsEmptyIDs(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Delete", mock.Anything, "complaints/a").Return(errors.New("not found")).Once()
	storage.On("Delete", mock.Anything, "complaints/b").Return(nil).Once()

	m := &complaints.AttachmentManager{Storage: storage}
	m.Detach(context.Background(), []string{"complaints/a", "", "complaints/b"})

	storage.AssertExpectations(t)
	storage.AssertNumberOfCalls(t, "Delete", 2)
}
