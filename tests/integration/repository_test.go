package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcms-platform/manifest-service/internal/domain"
	"github.com/dcms-platform/manifest-service/internal/infrastructure/mongodb"
	sharedtesting "github.com/dcms-platform/manifest-service/pkg/testing"
)

// Test fixtures
func createTestManifest(manifestID, centerName string, centerType domain.CenterType) (*domain.Manifest, error) {
	orders := []domain.Order{
		{
			OrderNo:       "ORD-004",
			RecipientName: "Choi",
			Address:       "Daegu Suseong-gu 12",
			ProductName:   "Blanket",
			Quantity:      1,
			UnitPrice:     decimal.NewFromInt(15000),
			TotalPrice:    decimal.NewFromInt(15000),
			BoxSize:       "L",
		},
		{
			OrderNo:       "ORD-001_consolidated",
			RecipientName: "Kim",
			Address:       "★Seoul Gangnam-gu 1",
			ProductName:   "Consolidated Invoice (2 items)",
			Quantity:      3,
			TotalPrice:    decimal.NewFromInt(3000),
			ShippingCost:  decimal.NewFromInt(3000),
			SpecialNote:   "Socks, Gloves",
		},
	}

	return domain.NewManifest(manifestID, centerName, centerType, decimal.NewFromInt(3000), 4, orders)
}

func setupTestRepository(t *testing.T) (*mongodb.ManifestRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := sharedtesting.NewMongoDBContainer(ctx)
	require.NoError(t, err)

	client, err := mongoContainer.GetClient(ctx)
	require.NoError(t, err)

	db := client.Database("test_dcms")
	repo := mongodb.NewManifestRepository(db)

	cleanup := func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Failed to disconnect MongoDB client: %v", err)
		}
		if err := mongoContainer.Close(ctx); err != nil {
			t.Logf("Failed to close MongoDB container: %v", err)
		}
	}

	return repo, cleanup
}

func TestManifestRepository_Save(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := sharedtesting.CreateTestContext(30 * time.Second)
	defer cancel()

	t.Run("Save new manifest", func(t *testing.T) {
		manifest, err := createTestManifest("MAN-001", "gangnam-center", domain.CenterTypeStandard)
		require.NoError(t, err)

		err = repo.Save(ctx, manifest)
		assert.NoError(t, err)
		assert.Empty(t, manifest.DomainEvents())

		found, err := repo.FindByID(ctx, "MAN-001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "MAN-001", found.ManifestID)
		assert.Equal(t, "gangnam-center", found.CenterName)
		assert.Equal(t, domain.CenterTypeStandard, found.CenterType)
		assert.Equal(t, domain.ManifestStatusCompleted, found.Status)
		assert.Equal(t, 4, found.Counts.Input)

		// Decimal fields survive the string round trip
		require.Len(t, found.Orders, 2)
		assert.True(t, found.Orders[0].UnitPrice.Equal(decimal.NewFromInt(15000)))
		assert.True(t, found.Orders[1].ShippingCost.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, "★Seoul Gangnam-gu 1", found.Orders[1].Address)
	})

	t.Run("Update existing manifest (upsert)", func(t *testing.T) {
		manifest, err := createTestManifest("MAN-002", "gangnam-center", domain.CenterTypeStandard)
		require.NoError(t, err)

		err = repo.Save(ctx, manifest)
		require.NoError(t, err)

		manifest.Status = domain.ManifestStatusFailed
		err = repo.Save(ctx, manifest)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, "MAN-002")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.ManifestStatusFailed, found.Status)
	})
}

func TestManifestRepository_FindByID(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := sharedtesting.CreateTestContext(30 * time.Second)
	defer cancel()

	t.Run("Find existing manifest", func(t *testing.T) {
		manifest, err := createTestManifest("MAN-003", "jeju-center", domain.CenterTypeRegionalSurcharge)
		require.NoError(t, err)

		err = repo.Save(ctx, manifest)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, "MAN-003")
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.CenterTypeRegionalSurcharge, found.CenterType)
		assert.Len(t, found.Orders, 2)
	})

	t.Run("Find non-existent manifest", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "MAN-NONEXISTENT")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestManifestRepository_FindByCenter(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := sharedtesting.CreateTestContext(30 * time.Second)
	defer cancel()

	centerName := "busan-center"
	for i := 1; i <= 4; i++ {
		manifest, err := createTestManifest(fmt.Sprintf("MAN-BUSAN-%d", i), centerName, domain.CenterTypeStandard)
		require.NoError(t, err)
		err = repo.Save(ctx, manifest)
		require.NoError(t, err)
	}

	t.Run("Find all manifests for center", func(t *testing.T) {
		manifests, err := repo.FindByCenter(ctx, centerName, 10)
		assert.NoError(t, err)
		assert.Len(t, manifests, 4)

		for _, m := range manifests {
			assert.Equal(t, centerName, m.CenterName)
		}
	})

	t.Run("Find with limit", func(t *testing.T) {
		manifests, err := repo.FindByCenter(ctx, centerName, 2)
		assert.NoError(t, err)
		assert.Len(t, manifests, 2)
	})

	t.Run("Find for non-existent center", func(t *testing.T) {
		manifests, err := repo.FindByCenter(ctx, "center-nonexistent", 10)
		assert.NoError(t, err)
		assert.Empty(t, manifests)
	})
}

func TestManifestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx, cancel := sharedtesting.CreateTestContext(30 * time.Second)
	defer cancel()

	t.Run("Delete existing manifest", func(t *testing.T) {
		manifest, err := createTestManifest("MAN-DELETE-001", "gangnam-center", domain.CenterTypeStandard)
		require.NoError(t, err)
		err = repo.Save(ctx, manifest)
		require.NoError(t, err)

		err = repo.Delete(ctx, "MAN-DELETE-001")
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, "MAN-DELETE-001")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Delete non-existent manifest", func(t *testing.T) {
		err := repo.Delete(ctx, "MAN-NONEXISTENT")
		assert.NoError(t, err)
	})
}
