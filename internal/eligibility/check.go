package eligibility

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/scholarship-tracker/internal/db"
)

// incomeOrdinals maps declared income brackets onto the ordinal scale
// scholarships express their caps on.
var incomeOrdinals = map[string]int{
	db.IncomeBracketLow:    1,
	db.IncomeBracketMedium: 2,
	db.IncomeBracketHigh:   3,
}

// Result is the verdict of an eligibility check. Eligible is true iff Reasons
// is empty. Warnings carry non-blocking findings, currently unrecognized
// transcript grades: those are treated as passing (the historical behavior of
// this check) but surfaced so callers can see the gap.
type Result struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
	Warnings []string `json:"warnings,omitempty"`
}

// Check compares a student's profile and transcript against a scholarship's
// constraints. Pure function of its inputs; no caching, no side effects.
// Profile and transcript may be nil (a student who has not onboarded yet):
// nil inputs simply cannot satisfy the corresponding constraints.
func Check(profile *db.Profile, transcript *db.Transcript, scholarship *db.Scholarship) Result {
	result := Result{Reasons: []string{}}

	// Citizenship allow-list
	if len(scholarship.Citizenship) > 0 {
		matched := false
		if profile != nil && profile.Citizenship != nil {
			for _, c := range scholarship.Citizenship {
				if c == *profile.Citizenship {
					matched = true
					break
				}
			}
		}
		if !matched {
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Citizenship must be one of: %s", strings.Join(scholarship.Citizenship, ", ")))
		}
	}

	// Income cap on the ordinal bracket scale
	if scholarship.IncomeCap != nil && profile != nil && profile.IncomeBracket != nil {
		if ordinal, ok := incomeOrdinals[*profile.IncomeBracket]; ok && ordinal > *scholarship.IncomeCap {
			result.Reasons = append(result.Reasons,
				"Household income exceeds the scholarship's income cap")
		}
	}

	// Minimum grades per subject
	for _, subject := range sortedSubjects(scholarship.MinGrades) {
		minGrade := scholarship.MinGrades[subject]
		grade, found := lookupGrade(transcript, subject)
		if !found {
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Required subject %q not found in transcript", subject))
			continue
		}

		value := ConvertGradeToNumber(grade)
		if value == nil {
			// Unrecognized grades pass. Record a warning instead of silently
			// swallowing them.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Unrecognized grade %q for %s; treated as passing", grade, subject))
			continue
		}
		if *value < minGrade {
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("%s grade %.0f is below the required minimum %.0f", subject, *value, minGrade))
		}
	}

	result.Eligible = len(result.Reasons) == 0
	return result
}

// sortedSubjects returns the constrained subjects in stable order so the
// reasons list is deterministic across calls.
func sortedSubjects(minGrades map[string]float64) []string {
	subjects := make([]string, 0, len(minGrades))
	for s := range minGrades {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// lookupGrade finds a subject's grade on the transcript, case-insensitively
func lookupGrade(transcript *db.Transcript, subject string) (string, bool) {
	if transcript == nil {
		return "", false
	}
	for _, sg := range transcript.Subjects {
		if strings.EqualFold(strings.TrimSpace(sg.Subject), strings.TrimSpace(subject)) {
			return sg.Grade, true
		}
	}
	return "", false
}
