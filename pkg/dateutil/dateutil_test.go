package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYear(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{"Fall term", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), 2026},
		{"Spring term", time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"Award year boundary", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"Day before boundary", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AcademicYear(tt.date))
		})
	}
}

func TestAcademicYearLabel(t *testing.T) {
	assert.Equal(t, "2026-27", AcademicYearLabel(2026))
	assert.Equal(t, "2099-00", AcademicYearLabel(2099))
	assert.Equal(t, "2008-09", AcademicYearLabel(2008))
}

func TestAcademicYearStart(t *testing.T) {
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), AcademicYearStart(2026))
}

func TestProgramAcademicYears(t *testing.T) {
	start := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2026-27", "2027-28", "2028-29"}, ProgramAcademicYears(start, 3))
	assert.Nil(t, ProgramAcademicYears(start, 0))
}

func TestStartsBefore(t *testing.T) {
	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, StartsBefore(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), cutoff))
	assert.False(t, StartsBefore(cutoff, cutoff), "the cutoff day itself is not before")
	assert.False(t, StartsBefore(time.Date(2026, 7, 1, 23, 0, 0, 0, time.UTC), cutoff))
	assert.True(t, StartsBefore(time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC), cutoff))
}
