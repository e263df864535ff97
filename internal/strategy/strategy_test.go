package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectTiers(t *testing.T) {
	tests := []struct {
		name  string
		files int
		bytes int64
		want  Tier
	}{
		{"empty", 0, 0, TierSmall},
		{"small upper bound", 100, 1_000_000, TierSmall},
		{"medium by files", 101, 0, TierMedium},
		{"medium by bytes", 0, 1_000_001, TierMedium},
		{"medium upper bound", 500, 5_000_000, TierMedium},
		{"large by files", 501, 0, TierLarge},
		{"large by bytes", 10, 5_000_001, TierLarge},
		{"exactly 1000 files", 1000, 0, TierLarge},
		{"1001 files", 1001, 0, TierVeryLarge},
		{"999 files", 999, 0, TierLarge},
		{"exactly 10M bytes", 0, 10_000_000, TierLarge},
		{"10M+1 bytes", 0, 10_000_001, TierVeryLarge},
		{"10M-1 bytes", 0, 9_999_999, TierLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.files, tt.bytes)
			assert.Equal(t, tt.want, got.Tier())
			assert.Equal(t, tt.want, TierFor(tt.files, tt.bytes))
		})
	}
}

func TestSelectValues(t *testing.T) {
	assert.Equal(t, Strategy{MaxFiles: 15, MaxChunkSize: 2000, MaxConcurrent: 3, UseChunking: true}, Select(5000, 0))
	assert.Equal(t, Strategy{MaxFiles: 25, MaxChunkSize: 2500, MaxConcurrent: 4, UseChunking: true}, Select(600, 0))
	assert.Equal(t, Strategy{MaxFiles: 30, MaxChunkSize: 3000, MaxConcurrent: 5, UseChunking: false}, Select(200, 0))
	assert.Equal(t, Strategy{MaxFiles: 40, MaxChunkSize: 4000, MaxConcurrent: 6, UseChunking: false}, Select(3, 100))
}

func TestSelectIsPure(t *testing.T) {
	inputs := [][2]int64{{0, 0}, {100, 1_000_000}, {1000, 10_000_000}, {1001, 1}, {42, 7_000_000}}
	for _, in := range inputs {
		first := Select(int(in[0]), in[1])
		second := Select(int(in[0]), in[1])
		assert.Equal(t, first, second)
	}
}

func TestCustomStrategyTier(t *testing.T) {
	s := Strategy{MaxFiles: 1, MaxChunkSize: 10, MaxConcurrent: 1}
	assert.Equal(t, Tier("custom"), s.Tier())
	assert.Contains(t, s.String(), "custom")
}
