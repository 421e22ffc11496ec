package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunUsageRecorderContract runs a suite of tests to verify that a UsageRecorder
// implementation adheres to the defined interface contract. The recorder must
// start empty.
func RunUsageRecorderContract(t *testing.T, recorder UsageRecorder) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		counts, err := recorder.Counts(ctx)
		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("Record and Count", func(t *testing.T) {
		require.NoError(t, recorder.Record(ctx, "whoami", domain.OutcomeFound))
		require.NoError(t, recorder.Record(ctx, "whoami", domain.OutcomeFound))
		require.NoError(t, recorder.Record(ctx, "clear", domain.OutcomeClear))

		counts, err := recorder.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts["whoami"])
		assert.Equal(t, int64(1), counts["clear"])
	})

	t.Run("Not Found Is Anonymous", func(t *testing.T) {
		require.NoError(t, recorder.Record(ctx, "secret-password", domain.OutcomeNotFound))

		counts, err := recorder.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[NotFoundKey])
		assert.NotContains(t, counts, "secret-password")
	})

	t.Run("Noop Ignored", func(t *testing.T) {
		before, err := recorder.Counts(ctx)
		require.NoError(t, err)
		require.NoError(t, recorder.Record(ctx, "", domain.OutcomeNoop))
		after, err := recorder.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Concurrent Record", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, recorder.Record(ctx, "skills", domain.OutcomeFound))
			}()
		}
		wg.Wait()

		counts, err := recorder.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(50), counts["skills"])
	})
}
