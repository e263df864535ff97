// Package strategy picks analysis limits from the size of a repository.
package strategy

import "fmt"

// Tier names a repository size class
type Tier string

const (
	TierVeryLarge Tier = "very-large"
	TierLarge     Tier = "large"
	TierMedium    Tier = "medium"
	TierSmall     Tier = "small"
)

// Strategy holds the operating limits for one pipeline run
type Strategy struct {
	MaxFiles      int  `json:"max_files" yaml:"max_files"`
	MaxChunkSize  int  `json:"max_chunk_size" yaml:"max_chunk_size"`
	MaxConcurrent int  `json:"max_concurrent" yaml:"max_concurrent"`
	UseChunking   bool `json:"use_chunking" yaml:"use_chunking"`
}

type tierRule struct {
	tier     Tier
	minFiles int   // exclusive
	minBytes int64 // exclusive
	strategy Strategy
}

// tiers are evaluated top to bottom; the first rule whose file count OR byte
// total is exceeded wins. The last rule always matches.
var tiers = []tierRule{
	{TierVeryLarge, 1000, 10_000_000, Strategy{MaxFiles: 15, MaxChunkSize: 2000, MaxConcurrent: 3, UseChunking: true}},
	{TierLarge, 500, 5_000_000, Strategy{MaxFiles: 25, MaxChunkSize: 2500, MaxConcurrent: 4, UseChunking: true}},
	{TierMedium, 100, 1_000_000, Strategy{MaxFiles: 30, MaxChunkSize: 3000, MaxConcurrent: 5, UseChunking: false}},
	{TierSmall, -1, -1, Strategy{MaxFiles: 40, MaxChunkSize: 4000, MaxConcurrent: 6, UseChunking: false}},
}

// Select returns the strategy for a repository with fileCount files totalling totalBytes
func Select(fileCount int, totalBytes int64) Strategy {
	return selectRule(fileCount, totalBytes).strategy
}

// TierFor returns the tier name Select would use
func TierFor(fileCount int, totalBytes int64) Tier {
	return selectRule(fileCount, totalBytes).tier
}

func selectRule(fileCount int, totalBytes int64) tierRule {
	for _, r := range tiers {
		if fileCount > r.minFiles || totalBytes > r.minBytes {
			return r
		}
	}
	return tiers[len(tiers)-1]
}

// Tier returns the tier this strategy belongs to, or "custom"
func (s Strategy) Tier() Tier {
	for _, r := range tiers {
		if r.strategy == s {
			return r.tier
		}
	}
	return "custom"
}

func (s Strategy) String() string {
	return fmt.Sprintf("%s (files=%d chunk=%d concurrent=%d chunking=%t)",
		s.Tier(), s.MaxFiles, s.MaxChunkSize, s.MaxConcurrent, s.UseChunking)
}
