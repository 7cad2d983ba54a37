//go:build unit

package catalog_test

import (
	"testing"
	"time"

	"barberbook/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingHours(t *testing.T) {
	t.Run("valid hours", func(t *testing.T) {
		hours, err := catalog.NewWorkingHours(9*60, 17*60+30, 0)
		require.NoError(t, err)
		assert.Equal(t, 9*60, hours.OpenMin())
		assert.Equal(t, 17*60+30, hours.CloseMin())
	})

	t.Run("open must precede close", func(t *testing.T) {
		_, err := catalog.NewWorkingHours(17*60, 9*60, 0)
		assert.ErrorIs(t, err, catalog.ErrInvalidWorkingHours)

		_, err = catalog.NewWorkingHours(9*60, 9*60, 0)
		assert.ErrorIs(t, err, catalog.ErrInvalidWorkingHours)
	})

	t.Run("bounds", func(t *testing.T) {
		_, err := catalog.NewWorkingHours(-1, 17*60, 0)
		assert.ErrorIs(t, err, catalog.ErrInvalidWorkingHours)

		_, err = catalog.NewWorkingHours(9*60, 24*60+1, 0)
		assert.ErrorIs(t, err, catalog.ErrInvalidWorkingHours)
	})

	t.Run("closed days bitmask", func(t *testing.T) {
		hours, err := catalog.NewWorkingHours(9*60, 17*60, 1<<uint(time.Sunday)|1<<uint(time.Monday))
		require.NoError(t, err)

		assert.False(t, hours.IsOpenOn(time.Sunday))
		assert.False(t, hours.IsOpenOn(time.Monday))
		assert.True(t, hours.IsOpenOn(time.Tuesday))
		assert.True(t, hours.IsOpenOn(time.Saturday))
	})

	t.Run("anchoring to a calendar day", func(t *testing.T) {
		hours := catalog.DefaultWorkingHours()
		day := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)

		assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), hours.OpenAt(day))
		assert.Equal(t, time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC), hours.CloseAt(day))
	})

	t.Run("default hours are closed on Sunday", func(t *testing.T) {
		hours := catalog.DefaultWorkingHours()
		assert.False(t, hours.IsOpenOn(time.Sunday))
		assert.True(t, hours.IsOpenOn(time.Saturday))
	})
}
