package pillars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountOccurrences(t *testing.T) {
	text := "growth drives growth, but risk remains a risk"
	assert.Equal(t, 2, countOccurrences(text, []string{"growth"}))
	assert.Equal(t, 4, countOccurrences(text, []string{"growth", "risk"}))
	assert.Equal(t, 0, countOccurrences(text, []string{"threat"}))
}

func TestCountPresent(t *testing.T) {
	text := "growth drives growth, but risk remains"
	assert.Equal(t, 1, countPresent(text, []string{"growth"}))
	assert.Equal(t, 2, countPresent(text, []string{"growth", "risk", "threat"}))
}

func TestRatioScore(t *testing.T) {
	assert.Equal(t, 0.5, ratioScore(0, 0))
	assert.Equal(t, 0.9, ratioScore(10, 0))
	assert.Equal(t, 0.1, ratioScore(0, 10))
	assert.InDelta(t, 0.75, ratioScore(3, 1), 1e-9)
}

func TestMatchLabels(t *testing.T) {
	triggers := []trigger{
		{"Alpha", []string{"first", "one"}},
		{"Beta", []string{"second"}},
		{"Gamma", []string{"third"}},
	}

	assert.Equal(t, []string{"Alpha", "Gamma"}, matchLabels("one and third", triggers, 3, nil))
	assert.Equal(t, []string{"Alpha", "Beta"}, matchLabels("first second third", triggers, 2, nil))
	assert.Equal(t, []string{"Default"}, matchLabels("nothing relevant", triggers, 3, []string{"Default"}))
	assert.Nil(t, matchLabels("nothing relevant", triggers, 3, nil))
}

func TestGradeLevel(t *testing.T) {
	assert.Equal(t, "HIGH", gradeLevel(2, 1, 0, "HIGH", "MEDIUM", "LOW"))
	assert.Equal(t, "MEDIUM", gradeLevel(1, 2, 0, "HIGH", "MEDIUM", "LOW"))
	assert.Equal(t, "LOW", gradeLevel(0, 0, 0, "HIGH", "MEDIUM", "LOW"))
	// Ties break away from the high grade.
	assert.Equal(t, "MEDIUM", gradeLevel(1, 1, 0, "HIGH", "MEDIUM", "LOW"))
	assert.Equal(t, "LOW", gradeLevel(0, 1, 1, "HIGH", "MEDIUM", "LOW"))
}
