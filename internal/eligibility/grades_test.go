package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertGradeToNumber_LetterGrades(t *testing.T) {
	tests := []struct {
		grade string
		want  float64
	}{
		{"A+", 100},
		{"A", 95},
		{"A-", 90},
		{"B+", 89},
		{"B", 85},
		{"B-", 80},
		{"C+", 79},
		{"C", 75},
		{"C-", 70},
		{"D+", 69},
		{"D", 65},
		{"D-", 60},
		{"F", 0},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			got := ConvertGradeToNumber(tt.grade)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestConvertGradeToNumber_NumericPassThrough(t *testing.T) {
	got := ConvertGradeToNumber("87.5")
	require.NotNil(t, got)
	assert.Equal(t, 87.5, *got)

	got = ConvertGradeToNumber(" 60 ")
	require.NotNil(t, got)
	assert.Equal(t, 60.0, *got)
}

func TestConvertGradeToNumber_CaseAndWhitespace(t *testing.T) {
	got := ConvertGradeToNumber(" b+ ")
	require.NotNil(t, got)
	assert.Equal(t, 89.0, *got)
}

func TestConvertGradeToNumber_Unrecognized(t *testing.T) {
	assert.Nil(t, ConvertGradeToNumber(""))
	assert.Nil(t, ConvertGradeToNumber("Excellent"))
	assert.Nil(t, ConvertGradeToNumber("Z-"))
}

// TestConvertGradeToNumber_Monotonic checks that a higher-ranked letter never
// converts to a lower numeric value than a lower-ranked one.
func TestConvertGradeToNumber_Monotonic(t *testing.T) {
	ranked := []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "F"}

	for i := 0; i < len(ranked)-1; i++ {
		higher := ConvertGradeToNumber(ranked[i])
		lower := ConvertGradeToNumber(ranked[i+1])
		require.NotNil(t, higher)
		require.NotNil(t, lower)
		assert.GreaterOrEqual(t, *higher, *lower,
			"%s should not convert below %s", ranked[i], ranked[i+1])
	}
}
