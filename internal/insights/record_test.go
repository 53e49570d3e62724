package insights_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/testsupport"
)

func newProviderStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
}

func TestCurrentWithoutRefreshReturnsNil(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	logger := testsupport.NewTestLogger()
	cache := insights.NewCache(db, logger,
		insights.NewSnapshotBuilder(db, logger),
		insights.NewGenerator(testProviderConfig("http://127.0.0.1:1"), logger))

	record, err := cache.Current()
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRefreshThenCurrentReturnsIdenticalMetrics(t *testing.T) {
	srv := newProviderStub(t, "- Restock now")
	defer srv.Close()

	db := testsupport.SetupTestDB(t)
	logger := testsupport.NewTestLogger()
	cache := insights.NewCache(db, logger,
		insights.NewSnapshotBuilder(db, logger),
		insights.NewGenerator(testProviderConfig(srv.URL), logger))

	testsupport.CreateTestItem(t, db, "Sold Gown", 250, catalog.StatusSold)

	record, snapshot, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "- Restock now", record.InsightText)

	current, err := cache.Current()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, record.ID, current.ID)

	// The stored metrics decode to exactly the snapshot used for the
	// prompt.
	stored, err := current.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snapshot, stored)

	expectedJSON, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, string(expectedJSON), string(current.Metrics))
}

func TestRefreshWithFailingProviderStillPersists(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	logger := testsupport.NewTestLogger()
	cache := insights.NewCache(db, logger,
		insights.NewSnapshotBuilder(db, logger),
		insights.NewGenerator(testProviderConfig("http://127.0.0.1:1"), logger))

	testsupport.CreateTestItem(t, db, "Sold Dress", 100, catalog.StatusSold)

	record, snapshot, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, insights.PlaceholderInsight, record.InsightText)
	assert.Equal(t, 100.0, snapshot.TotalRevenue)

	current, err := cache.Current()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, insights.PlaceholderInsight, current.InsightText)
}

func TestRefreshSupersedesOlderRecords(t *testing.T) {
	srv := newProviderStub(t, "- Keep momentum")
	defer srv.Close()

	db := testsupport.SetupTestDB(t)
	logger := testsupport.NewTestLogger()
	cache := insights.NewCache(db, logger,
		insights.NewSnapshotBuilder(db, logger),
		insights.NewGenerator(testProviderConfig(srv.URL), logger))

	first, _, err := cache.Refresh(context.Background())
	require.NoError(t, err)

	testsupport.CreateTestItem(t, db, "New Arrival", 75, catalog.StatusAvailable)

	second, _, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	current, err := cache.Current()
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	// Older records survive as history.
	history, err := cache.History(10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
