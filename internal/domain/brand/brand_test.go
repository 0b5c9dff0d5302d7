package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"71–78", f(74.5)},
		{"71-78", f(74.5)},
		{"90", f(90.0)},
		{"58.5", f(58.5)},
		{" 62 ", f(62.0)},
		{"", nil},
		{"abc", nil},
		{"n/a", nil},
	}
	for _, tt := range tests {
		got := ParseRange(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
		} else {
			require.NotNil(t, got, "input %q", tt.in)
			assert.InDelta(t, *tt.want, *got, 1e-9, "input %q", tt.in)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestAgeMatches(t *testing.T) {
	tests := []struct {
		cell   string
		target float64
		want   bool
	}{
		{"10&11", 10, true},
		{"10&11", 11, true},
		{"10&11", 12, false},
		{"104–110", 107, true},
		{"104–110", 104, true},
		{"104–110", 110, true},
		{"104–110", 111, false},
		{"4-5", 4, true},
		{"4-5", 6, false},
		{"120", 120, true},
		{"120", 119, false},
		{"7", 7.9, true}, // target truncated to integer
		{"abc", 5, false},
		{"", 5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeMatches(tt.cell, tt.target), "cell %q target %v", tt.cell, tt.target)
	}
}

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(filepath.Join("testdata", "brandsize.csv"), logging.NewNopLogger())
}

func TestResolve_PlainBrand(t *testing.T) {
	got := testResolver(t).Resolve("Zara", 7, measurement.Male)
	require.NotNil(t, got)
	assert.Equal(t, 58.0, got["Chest"])
	assert.Equal(t, 53.0, got["Waist"])
	assert.Equal(t, 61.0, got["Hip"])
}

func TestResolve_CaseInsensitiveSubstring(t *testing.T) {
	got := testResolver(t).Resolve("zara", 10, measurement.Female)
	require.NotNil(t, got)
	assert.Equal(t, 66.0, got["Chest"])
}

func TestResolve_RangeCells(t *testing.T) {
	got := testResolver(t).Resolve("FirstCry", 4, measurement.Male)
	require.NotNil(t, got)
	assert.Equal(t, 57.0, got["Chest"])
	assert.Equal(t, 53.0, got["Waist"])
	assert.Equal(t, 59.0, got["Hip"])
}

func TestResolve_GenderMarkers(t *testing.T) {
	r := testResolver(t)

	boy := r.Resolve("H&M", 7, measurement.Male)
	require.NotNil(t, boy)
	assert.Equal(t, 60.0, boy["Chest"])

	girl := r.Resolve("H&M", 7, measurement.Female)
	require.NotNil(t, girl)
	assert.Equal(t, 58.0, girl["Chest"])
	assert.Equal(t, 62.0, girl["Hip"])
}

func TestResolve_GenderRowsMissAge(t *testing.T) {
	// Girls' rows exist, so the gender filter sticks even though none of
	// them covers age 10; the boys' age-10 row is not consulted.
	got := testResolver(t).Resolve("H&M", 10, measurement.Female)
	assert.Nil(t, got)
}

func TestResolve_GenderMarkerFallback(t *testing.T) {
	// No girls' rows at all: the gender filter is abandoned and the brand's
	// remaining rows are searched by age.
	csv := "Brand,Age (Years),Height (cm),Chest (cm),Waist (cm),Hips (cm)\n" +
		"H&M (B),7,122,60,54,66\n" +
		"H&M (B),10,140,66,57,68\n"
	path := filepath.Join(t.TempDir(), "boys-only.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	r := NewResolver(path, logging.NewNopLogger())
	got := r.Resolve("H&M", 10, measurement.Female)
	require.NotNil(t, got)
	assert.Equal(t, 66.0, got["Chest"])
}

func TestResolve_BlankAndUnparseableCellsOmitted(t *testing.T) {
	// The boys' H&M row at age 7 has a blank Hips cell.
	boy := testResolver(t).Resolve("H&M", 7, measurement.Male)
	require.NotNil(t, boy)
	_, ok := boy["Hip"]
	assert.False(t, ok)

	// Allen Solly's chest cell is non-numeric text.
	got := testResolver(t).Resolve("Allen Solly", 8, measurement.Male)
	require.NotNil(t, got)
	_, ok = got["Chest"]
	assert.False(t, ok)
	assert.Equal(t, 55.0, got["Waist"])
}

func TestResolve_UnknownBrand(t *testing.T) {
	assert.Nil(t, testResolver(t).Resolve("Nonexistent", 7, measurement.Male))
}

func TestResolve_NoAgeMatch(t *testing.T) {
	assert.Nil(t, testResolver(t).Resolve("Zara", 15, measurement.Male))
}

func TestResolve_MissingDataset(t *testing.T) {
	r := NewResolver("testdata/does-not-exist.csv", logging.NewNopLogger())
	assert.Nil(t, r.Resolve("Zara", 7, measurement.Male))
}
