package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"societypro-be/models"
)

func TestRemoveImages(t *testing.T) {
	c := &models.Complaint{Images: []models.ComplaintImage{
		{PublicID: "complaints/a"},
		{PublicID: "complaints/b"},
		{PublicID: "complaints/c"},
	}}

	c.RemoveImages([]string{"complaints/b", "complaints/does-not-exist"})

	assert.Len(t, c.Images, 2)
	assert.True(t, c.HasImage("complaints/a"))
	assert.False(t, c.HasImage("complaints/b"))
	assert.True(t, c.HasImage("complaints/c"))

	// Removing again is a no-op.
	c.RemoveImages([]string{"complaints/b"})
	assert.Len(t, c.Images, 2)
}

func TestValidEnums(t *testing.T) {
	assert.True(t, models.ValidCategory("plumbing"))
	assert.True(t, models.ValidCategory("common-area"))
	assert.False(t, models.ValidCategory("Plumbing"))
	assert.False(t, models.ValidCategory(""))

	assert.True(t, models.ValidPriority("urgent"))
	assert.False(t, models.ValidPriority("critical"))

	assert.True(t, models.ValidStatus("in-progress"))
	assert.False(t, models.ValidStatus("open"))
}

func TestTrialWindow(t *testing.T) {
	u := &models.FreeTrialUser{IsActive: true, TrialEndsAt: time.Now().Add(48*time.Hour + time.Minute)}
	assert.True(t, u.IsTrialActive())
	assert.Equal(t, 3, u.TrialDaysRemaining(), "partial days round up")
	assert.True(t, u.CanLogin())

	u.TrialEndsAt = time.Now().Add(-time.Minute)
	assert.False(t, u.IsTrialActive())
	assert.Equal(t, 0, u.TrialDaysRemaining())
	assert.False(t, u.CanLogin())
}
