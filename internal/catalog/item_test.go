package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/testsupport"
)

func TestItemStatusSoldFamily(t *testing.T) {
	assert.True(t, catalog.StatusSold.IsSoldFamily())
	assert.True(t, catalog.StatusOfflineSold.IsSoldFamily())
	assert.False(t, catalog.StatusAvailable.IsSoldFamily())
	assert.False(t, catalog.StatusReserved.IsSoldFamily())
}

func TestGetItemBySlug(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	item := catalog.Item{
		ID:     "item-1",
		Slug:   "silk-kebaya",
		Title:  "Silk Kebaya",
		Price:  250,
		Status: catalog.StatusAvailable,
	}
	require.NoError(t, catalog.CreateItem(db, &item))

	found, err := catalog.GetItemBySlug(db, "silk-kebaya")
	require.NoError(t, err)
	assert.Equal(t, "Silk Kebaya", found.Title)
}

func TestGetItemBySlugNotFound(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	_, err := catalog.GetItemBySlug(db, "missing")
	require.Error(t, err)

	var notFound *catalog.ItemNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Slug)
}

func TestGetItemsByStatus(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	testsupport.CreateTestItem(t, db, "Available One", 100, catalog.StatusAvailable)
	testsupport.CreateTestItem(t, db, "Sold One", 200, catalog.StatusSold)
	testsupport.CreateTestItem(t, db, "Available Two", 150, catalog.StatusAvailable)

	available, err := catalog.GetItemsByStatus(db, catalog.StatusAvailable)
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestUpdateItemStatus(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	item := testsupport.CreateTestItem(t, db, "Piece", 100, catalog.StatusAvailable)

	require.NoError(t, catalog.UpdateItemStatus(db, item.ID, catalog.StatusSold))

	updated, err := catalog.GetItemBySlug(db, item.Slug)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusSold, updated.Status)
}

func TestUpdateItemStatusMissingItem(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	err := catalog.UpdateItemStatus(db, "no-such-id", catalog.StatusSold)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
