package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/testsupport"
)

func TestCountDistinctVisitorsSince(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	now := time.Now()
	testsupport.CreateTestView(t, db, "item-a", "visitor-1", now.Add(-time.Hour))
	testsupport.CreateTestView(t, db, "item-b", "visitor-1", now.Add(-2*time.Hour))
	testsupport.CreateTestView(t, db, "item-a", "visitor-2", now.Add(-3*time.Hour))
	testsupport.CreateTestView(t, db, "item-a", "visitor-3", now.Add(-10*24*time.Hour))

	count, err := analytics.CountDistinctVisitorsSince(db, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGetAllEventsPreserveInsertionOrder(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	now := time.Now()
	testsupport.CreateTestView(t, db, "item-a", "visitor-1", now)
	testsupport.CreateTestView(t, db, "item-b", "visitor-2", now.Add(-time.Hour))
	testsupport.CreateTestClick(t, db, "item-b", "visitor-2", now)

	views, err := analytics.GetAllViewEvents(db)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "item-a", views[0].ItemID)
	assert.Equal(t, "item-b", views[1].ItemID)

	clicks, err := analytics.GetAllClickEvents(db)
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	assert.Equal(t, "item-b", clicks[0].ItemID)
}

func TestDeleteEventsOlderThan(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	old := time.Now().Add(-100 * 24 * time.Hour)
	recent := time.Now().Add(-time.Hour)

	// created_at drives retention; backdate it explicitly.
	for _, ts := range []time.Time{old, old, recent} {
		event := analytics.ViewEvent{ItemID: "item-a", VisitorID: "v", Timestamp: ts, CreatedAt: ts}
		require.NoError(t, db.Create(&event).Error)
	}
	click := analytics.ClickEvent{ItemID: "item-a", VisitorID: "v", Timestamp: old, CreatedAt: old}
	require.NoError(t, db.Create(&click).Error)

	deleted, err := analytics.DeleteEventsOlderThan(db, time.Now().AddDate(0, 0, -90), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	views, err := analytics.GetAllViewEvents(db)
	require.NoError(t, err)
	assert.Len(t, views, 1)

	clicks, err := analytics.GetAllClickEvents(db)
	require.NoError(t, err)
	assert.Empty(t, clicks)
}
