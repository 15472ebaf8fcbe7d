// Package eligibility implements the deterministic scholarship eligibility
// check: a pure comparison of a student's profile and transcript against a
// scholarship's declared constraints.
package eligibility

import (
	"strconv"
	"strings"
)

// letterGrades maps letter-grade prefixes to their numeric value on a 0-100
// scale. Order matters: modified grades ("A+", "A-") must be matched before
// the bare letter.
var letterGrades = []struct {
	Prefix string
	Value  float64
}{
	{"A+", 100},
	{"A-", 90},
	{"A", 95},
	{"B+", 89},
	{"B-", 80},
	{"B", 85},
	{"C+", 79},
	{"C-", 70},
	{"C", 75},
	{"D+", 69},
	{"D-", 60},
	{"D", 65},
	{"F", 0},
}

// ConvertGradeToNumber converts a transcript grade to a 0-100 numeric value.
// Numeric grade strings pass through unchanged; letter grades use the fixed
// table above. Returns nil if the grade cannot be interpreted.
func ConvertGradeToNumber(grade string) *float64 {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if g == "" {
		return nil
	}

	if n, err := strconv.ParseFloat(g, 64); err == nil {
		return &n
	}

	for _, lg := range letterGrades {
		if strings.HasPrefix(g, lg.Prefix) {
			v := lg.Value
			return &v
		}
	}

	return nil
}
