package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLines(n, width int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		line := fmt.Sprintf("line %04d ", i)
		line += strings.Repeat("x", width-len(line))
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestChunkSmallContentIsSingleChunk(t *testing.T) {
	assert.Equal(t, []string{"short\n"}, Chunk("short\n", 100))
	assert.Equal(t, []string{""}, Chunk("", 10))

	exact := strings.Repeat("a", 50)
	assert.Equal(t, []string{exact}, Chunk(exact, 50))
}

func TestChunkRoundTrip(t *testing.T) {
	content := numberedLines(180, 49)
	require.Equal(t, 9000, len(content))

	chunks := Chunk(content, 2500)
	require.Len(t, chunks, 4)
	assert.Equal(t, strings.TrimSpace(content), strings.Join(chunks, "\n"))
}

func TestChunkKeepsLinesWhole(t *testing.T) {
	content := numberedLines(300, 37)
	max := 1000

	chunks := Chunk(content, max)
	require.Greater(t, len(chunks), 1)

	seen := map[string]int{}
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), max)
		for _, line := range strings.Split(c, "\n") {
			seen[line]++
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		assert.Equal(t, 1, seen[line], "line %q must appear in exactly one chunk", line)
	}
}

func TestChunkOversizedLineStandsAlone(t *testing.T) {
	long := strings.Repeat("z", 120)
	content := "first\n" + long + "\nlast\n"

	chunks := Chunk(content, 50)
	assert.Equal(t, []string{"first", long, "last"}, chunks)
}
