package numbering_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/sample1/member-api/internal/model"
	"github.com/sample1/member-api/internal/numbering"
	"github.com/sample1/member-api/internal/shared/database"
	"github.com/sample1/member-api/internal/shared/metrics"
	"github.com/sample1/member-api/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T, initialValue int64) (*numbering.NumberingService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := numbering.NewNumberingRepository(initialValue)
	return numbering.NewNumberingService(db, repo, metrics.NopRecorder{}), db
}

func allocate(t *testing.T, svc *numbering.NumberingService, db *gorm.DB, seqID string) int64 {
	t.Helper()

	var value int64
	err := database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		var err error
		value, err = svc.Allocate(context.Background(), tx, seqID)
		return err
	})
	require.NoError(t, err)
	return value
}

func TestAllocate_StartsFromStoredValue(t *testing.T) {
	// Given: The counter currently holds 42
	svc, db := setupService(t, 1)
	testutil.SeedNumbering(t, db, model.MemberSequenceID, 42)

	// When
	first := allocate(t, svc, db, model.MemberSequenceID)
	second := allocate(t, svc, db, model.MemberSequenceID)

	// Then: Values come from the store and the counter advanced by one each time
	assert.Equal(t, int64(42), first)
	assert.Equal(t, int64(43), second)

	current, err := svc.Current(context.Background(), model.MemberSequenceID)
	require.NoError(t, err)
	assert.Equal(t, int64(44), current.NextVal)
}

func TestAllocate_CreatesMissingRow(t *testing.T) {
	svc, db := setupService(t, 100)

	value := allocate(t, svc, db, "OtherId")

	assert.Equal(t, int64(100), value)
	current, err := svc.Current(context.Background(), "OtherId")
	require.NoError(t, err)
	assert.Equal(t, int64(101), current.NextVal)
}

func TestAllocate_RolledBackWithCallerTransaction(t *testing.T) {
	// Given
	svc, db := setupService(t, 1)
	testutil.SeedNumbering(t, db, model.MemberSequenceID, 10)

	// When: The surrounding transaction fails after allocation
	err := database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		if _, err := svc.Allocate(context.Background(), tx, model.MemberSequenceID); err != nil {
			return err
		}
		return assert.AnError
	})

	// Then: The counter is unchanged
	require.ErrorIs(t, err, assert.AnError)
	current, err := svc.Current(context.Background(), model.MemberSequenceID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), current.NextVal)
}

func TestAllocate_ConcurrentCallersGetDistinctValues(t *testing.T) {
	svc, db := setupService(t, 1)
	testutil.SeedNumbering(t, db, model.MemberSequenceID, 1)

	const workers = 20
	values := make([]int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
				v, err := svc.Allocate(context.Background(), tx, model.MemberSequenceID)
				values[i] = v
				return err
			})
		}(i)
	}
	wg.Wait()

	sort.Slice(values, func(a, b int) bool { return values[a] < values[b] })
	for i, v := range values {
		assert.Equal(t, int64(i+1), v)
	}
}

func TestCurrent_NotFound(t *testing.T) {
	svc, _ := setupService(t, 1)

	_, err := svc.Current(context.Background(), "Missing")

	assert.ErrorIs(t, err, numbering.ErrSequenceNotFound)
}

func TestReset(t *testing.T) {
	// Given
	svc, db := setupService(t, 1)
	testutil.SeedNumbering(t, db, model.MemberSequenceID, 57)

	// When: An administrator restarts the sequence
	resp, err := svc.Reset(context.Background(), model.MemberSequenceID, 1000, "admin")

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(1000), resp.NextVal)
	assert.Equal(t, int64(1000), allocate(t, svc, db, model.MemberSequenceID))
}

func TestReset_CreatesMissingRow(t *testing.T) {
	svc, _ := setupService(t, 1)

	_, err := svc.Reset(context.Background(), "NewSeq", 5, "admin")
	require.NoError(t, err)

	current, err := svc.Current(context.Background(), "NewSeq")
	require.NoError(t, err)
	assert.Equal(t, int64(5), current.NextVal)
}

func TestReset_RejectsNonPositive(t *testing.T) {
	svc, _ := setupService(t, 1)

	for _, v := range []int64{0, -1} {
		_, err := svc.Reset(context.Background(), model.MemberSequenceID, v, "admin")
		assert.ErrorIs(t, err, numbering.ErrInvalidNextValue)
	}
}
