package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sweep/internal/event"
	"github.com/bamsammich/sweep/internal/stats"
)

func newTestResolver(strategy Strategy, rec *recorder) *Resolver {
	return NewResolver(strategy, rec, stats.NewCollector())
}

func TestSplitIndex(t *testing.T) {
	tests := []struct {
		in    string
		base  string
		index int
	}{
		{"file", "file", 0},
		{"file(1)", "file", 1},
		{"file(12)", "file", 12},
		{"(3)", "", 3},
		// Non-numeric parenthesized content is literal text, not an index.
		{"file(abc)", "file(abc)", 0},
		{"file(-1)", "file(-1)", 0},
		{"file(1a)", "file(1a)", 0},
		// Empty parens carry no index and are dropped.
		{"file()", "file", 0},
		// Unbalanced parens are literal.
		{"fi(le", "fi(le", 0},
	}
	for _, tt := range tests {
		base, index := splitIndex(tt.in)
		assert.Equal(t, tt.base, base, tt.in)
		assert.Equal(t, tt.index, index, tt.in)
	}
}

func TestUniqueDestinationFreshCollision(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "img.png")
	writeFile(t, dst, "original")

	assert.Equal(t, filepath.Join(dir, "img(1).png"), uniqueDestination(dst))
}

func TestUniqueDestinationSkipsExistingIndexes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "name.ext"), "0")
	writeFile(t, filepath.Join(dir, "name(1).ext"), "1")
	writeFile(t, filepath.Join(dir, "name(2).ext"), "2")

	got := uniqueDestination(filepath.Join(dir, "name.ext"))
	assert.Equal(t, filepath.Join(dir, "name(3).ext"), got)
}

func TestUniqueDestinationLiteralParens(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "test(abc).txt"), "x")

	got := uniqueDestination(filepath.Join(dir, "test(abc).txt"))
	assert.Equal(t, filepath.Join(dir, "test(abc)(1).txt"), got)
}

func TestUniqueDestinationNoCollision(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "free.txt")
	assert.Equal(t, dst, uniqueDestination(dst))
}

func TestRenameStrategyPlacesIndexedCopy(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "img.png")
	dst := filepath.Join(dstDir, "img.png")
	writeFile(t, src, "new content")
	writeFile(t, dst, "old content")

	rec := &recorder{}
	r := newTestResolver(StrategyRename, rec)

	final, placed, err := r.Resolve(src, src, dst)
	require.NoError(t, err)
	assert.True(t, placed)
	assert.Equal(t, filepath.Join(dstDir, "img(1).png"), final)

	// The colliding destination is untouched; the copy landed alongside it.
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(data))

	data, err = os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))

	// The source is not removed by the resolver itself.
	assert.FileExists(t, src)
	assert.True(t, rec.has(event.ConflictRenamed))
}

func TestRenameStrategyTwiceYieldsDistinctNames(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	dst := filepath.Join(dstDir, "img.png")
	writeFile(t, dst, "original")

	r := newTestResolver(StrategyRename, &recorder{})

	srcA := filepath.Join(srcDir, "a", "img.png")
	srcB := filepath.Join(srcDir, "b", "img.png")
	writeFile(t, srcA, "first")
	writeFile(t, srcB, "second")

	finalA, placedA, err := r.Resolve(srcA, srcA, dst)
	require.NoError(t, err)
	finalB, placedB, err := r.Resolve(srcB, srcB, dst)
	require.NoError(t, err)

	assert.True(t, placedA)
	assert.True(t, placedB)
	assert.NotEqual(t, finalA, finalB)
	assert.Equal(t, filepath.Join(dstDir, "img(1).png"), finalA)
	assert.Equal(t, filepath.Join(dstDir, "img(2).png"), finalB)
}

func TestDuplicateStrategyTable(t *testing.T) {
	older := time.Now().Add(-time.Hour).Truncate(time.Second)
	newer := time.Now().Truncate(time.Second)

	tests := []struct {
		name       string
		stagedTime time.Time
		identical  bool
		placed     bool
		detail     string
	}{
		{"newer identical is ignored", newer, true, false, "newer identical"},
		{"newer different replaces", newer, false, true, "older"},
		{"older identical replaces", older, true, true, "identical"},
		{"older different is ignored", older, false, false, "older"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			staged := filepath.Join(dir, "staged", "a.txt")
			dst := filepath.Join(dir, "dst", "a.txt")

			writeFile(t, staged, "12345")
			if tt.identical {
				writeFile(t, dst, "12345")
			} else {
				writeFile(t, dst, "54321")
			}
			touch(t, staged, tt.stagedTime)
			// Destination sits between the two staged timestamps.
			touch(t, dst, time.Now().Add(-30*time.Minute).Truncate(time.Second))

			rec := &recorder{}
			r := newTestResolver(StrategyReplace, rec)

			final, placed, err := r.Resolve(staged, staged, dst)
			require.NoError(t, err)
			assert.Equal(t, dst, final)
			assert.Equal(t, tt.placed, placed)

			data, err := os.ReadFile(dst)
			require.NoError(t, err)
			if tt.placed {
				assert.Equal(t, "12345", string(data))
				require.True(t, rec.has(event.DuplicateReplaced))
				assert.Equal(t, tt.detail, rec.events[0].Detail)
			} else {
				if tt.identical {
					assert.Equal(t, "12345", string(data))
				} else {
					assert.Equal(t, "54321", string(data))
				}
				require.True(t, rec.has(event.DuplicateIgnored))
				assert.Equal(t, tt.detail, rec.events[0].Detail)
			}
		})
	}
}

func TestDuplicateStrategyEqualTimesTreatedAsDestNewer(t *testing.T) {
	dir := t.TempDir()
	staged := filepath.Join(dir, "staged.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, staged, "same")
	writeFile(t, dst, "same")

	ts := time.Now().Truncate(time.Second)
	touch(t, staged, ts)
	touch(t, dst, ts)

	rec := &recorder{}
	r := newTestResolver(StrategyReplace, rec)

	_, placed, err := r.Resolve(staged, staged, dst)
	require.NoError(t, err)
	// Identical content on a recency tie is still replaced.
	assert.True(t, placed)
	assert.Equal(t, "identical", rec.events[0].Detail)
}

func TestNoStrategyReportsAndSkips(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "source")
	writeFile(t, dst, "destination")

	rec := &recorder{}
	r := newTestResolver(StrategyNone, rec)

	_, placed, err := r.Resolve(src, src, dst)
	require.NoError(t, err)
	assert.False(t, placed)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "destination", string(data))
	assert.Equal(t, []event.Type{event.ConflictSkipped}, rec.types())
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	d := filepath.Join(dir, "d")
	writeFile(t, a, "identical bytes")
	writeFile(t, b, "identical bytes")
	writeFile(t, c, "different bytes!")
	writeFile(t, d, "identical byteZ")

	same, err := sameContent(a, b)
	require.NoError(t, err)
	assert.True(t, same)

	same, err = sameContent(a, c) // size differs
	require.NoError(t, err)
	assert.False(t, same)

	same, err = sameContent(a, d) // same size, different bytes
	require.NoError(t, err)
	assert.False(t, same)

	_, err = sameContent(a, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
