package pillars

import "strings"

// countOccurrences sums the number of times each indicator appears in text.
// Text is expected to be lowercased by the caller.
func countOccurrences(text string, indicators []string) int {
	total := 0
	for _, ind := range indicators {
		total += strings.Count(text, ind)
	}
	return total
}

// countPresent counts how many indicators appear at least once in text.
func countPresent(text string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			n++
		}
	}
	return n
}

// ratioScore converts favorable vs unfavorable mention counts into a score
// bounded to [0.1, 0.9], with 0.5 when neither side appears.
func ratioScore(favorable, unfavorable int) float64 {
	if favorable+unfavorable == 0 {
		return 0.5
	}
	ratio := float64(favorable) / float64(favorable+unfavorable)
	if ratio < 0.1 {
		return 0.1
	}
	if ratio > 0.9 {
		return 0.9
	}
	return ratio
}

// trigger pairs an output label with the scenario terms that activate it.
type trigger struct {
	label string
	terms []string
}

// matchLabels collects up to max labels whose trigger terms appear in text,
// falling back to the given defaults when nothing matches.
func matchLabels(text string, triggers []trigger, max int, fallback []string) []string {
	var labels []string
	for _, tr := range triggers {
		for _, term := range tr.terms {
			if strings.Contains(text, term) {
				labels = append(labels, tr.label)
				break
			}
		}
		if len(labels) == max {
			break
		}
	}
	if len(labels) == 0 {
		return fallback
	}
	return labels
}

// gradeLevel maps three indicator tallies to a categorical grade. The high
// bucket wins only when it strictly beats both others, matching the
// original tie-breaking toward the lower grades.
func gradeLevel(high, medium, low int, highGrade, mediumGrade, lowGrade string) string {
	if high > medium && high > low {
		return highGrade
	}
	if medium > low {
		return mediumGrade
	}
	return lowGrade
}
