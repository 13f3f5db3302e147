package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validItem() *RoadmapItem {
	return &RoadmapItem{
		ID:      "i-1",
		TrackID: "t-1",
		Type:    ItemTask,
		Title:   "Paint the fence",
		Status:  StatusNotStarted,
	}
}

func TestItemValidate(t *testing.T) {
	require.NoError(t, validItem().Validate())

	noTitle := validItem()
	noTitle.Title = ""
	assert.Error(t, noTitle.Validate())

	noTrack := validItem()
	noTrack.TrackID = ""
	assert.Error(t, noTrack.Validate())

	badType := validItem()
	badType.Type = "chore"
	assert.Error(t, badType.Validate())

	badStatus := validItem()
	badStatus.Status = "paused"
	assert.Error(t, badStatus.Validate())
}

func TestItemValidate_EndBeforeStart(t *testing.T) {
	i := validItem()
	i.StartDate = datePtr(2025, 1, 5)
	i.EndDate = datePtr(2025, 1, 2)

	err := i.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedes start date")
}

func TestItemValidate_StartRequiredByType(t *testing.T) {
	for _, typ := range []ItemType{ItemEvent, ItemMilestone} {
		i := validItem()
		i.Type = typ
		err := i.Validate()
		require.Error(t, err, "type=%s", typ)
		assert.Contains(t, err.Error(), "require a start date")

		i.StartDate = datePtr(2025, 3, 10)
		assert.NoError(t, i.Validate(), "type=%s with start date", typ)
	}

	// Every other type is fine without dates.
	for _, typ := range []ItemType{ItemTask, ItemGoal, ItemHabit, ItemNote, ItemDocument, ItemPhoto, ItemGroceryList, ItemReview} {
		i := validItem()
		i.Type = typ
		assert.NoError(t, i.Validate(), "type=%s", typ)
	}
}

func TestEffectiveEnd(t *testing.T) {
	i := validItem()
	assert.Nil(t, i.EffectiveEnd(), "unscheduled item has no interval")

	i.StartDate = datePtr(2025, 3, 10)
	require.NotNil(t, i.EffectiveEnd())
	assert.Equal(t, *i.StartDate, *i.EffectiveEnd(), "point-in-time item ends where it starts")

	i.EndDate = datePtr(2025, 3, 14)
	assert.Equal(t, *i.EndDate, *i.EffectiveEnd())
}

func TestSetStatus(t *testing.T) {
	i := validItem()
	require.NoError(t, i.SetStatus(StatusInProgress, testNow))
	assert.Equal(t, StatusInProgress, i.Status)
	assert.Equal(t, testNow, i.UpdatedAt)

	require.Error(t, i.SetStatus("paused", testNow))
	assert.Equal(t, StatusInProgress, i.Status, "status should not change on invalid input")
}
