package insights_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
)

func view(itemID, visitorID string) analytics.ViewEvent {
	return analytics.ViewEvent{ItemID: itemID, VisitorID: visitorID, Timestamp: time.Now()}
}

func click(itemID, visitorID string) analytics.ClickEvent {
	return analytics.ClickEvent{ItemID: itemID, VisitorID: visitorID, Timestamp: time.Now()}
}

func TestComputeDemandScores(t *testing.T) {
	views := []analytics.ViewEvent{
		view("item-a", "v1"),
		view("item-a", "v2"),
		view("item-b", "v1"),
	}
	clicks := []analytics.ClickEvent{
		click("item-a", "v1"),
		click("item-c", "v3"),
	}

	scores := insights.ComputeDemandScores(views, clicks)

	// score = views×1 + clicks×3
	assert.Equal(t, 5, scores["item-a"])
	assert.Equal(t, 1, scores["item-b"])
	assert.Equal(t, 3, scores["item-c"])
}

func TestComputeDemandScoresZeroEventItemAbsent(t *testing.T) {
	scores := insights.ComputeDemandScores(
		[]analytics.ViewEvent{view("item-a", "v1")},
		nil,
	)

	assert.Len(t, scores, 1)
	_, present := scores["item-never-seen"]
	assert.False(t, present)
}

func TestComputeDemandScoresSkipsMalformedEvents(t *testing.T) {
	scores := insights.ComputeDemandScores(
		[]analytics.ViewEvent{view("", "v1"), view("item-a", "v1")},
		[]analytics.ClickEvent{click("", "v1")},
	)

	assert.Equal(t, map[string]int{"item-a": 1}, scores)
}

func TestTopDemandItemID(t *testing.T) {
	views := []analytics.ViewEvent{
		view("item-a", "v1"),
		view("item-b", "v1"),
		view("item-b", "v2"),
	}
	clicks := []analytics.ClickEvent{
		click("item-c", "v3"),
	}

	topID, ok := insights.TopDemandItemID(views, clicks)
	assert.True(t, ok)
	assert.Equal(t, "item-c", topID)
}

func TestTopDemandItemIDEmpty(t *testing.T) {
	topID, ok := insights.TopDemandItemID(nil, nil)
	assert.False(t, ok)
	assert.Empty(t, topID)
}

func TestTopDemandItemIDTieBreaksToFirstEncountered(t *testing.T) {
	// item-a and item-b both end up with score 2; item-a appears first
	// in event-processing order.
	views := []analytics.ViewEvent{
		view("item-a", "v1"),
		view("item-b", "v1"),
		view("item-a", "v2"),
		view("item-b", "v2"),
	}

	for i := 0; i < 10; i++ {
		topID, ok := insights.TopDemandItemID(views, nil)
		assert.True(t, ok)
		assert.Equal(t, "item-a", topID)
	}
}
