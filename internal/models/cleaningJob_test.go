package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobWithPercents(percents ...int) *CleaningJob {
	job := &CleaningJob{}
	for _, p := range percents {
		job.Progress = append(job.Progress, SectionProgress{Percent: p})
	}
	return job
}

func TestAveragePercent(t *testing.T) {
	testCases := []struct {
		name     string
		percents []int
		expected int
	}{
		{"no rows", nil, 0},
		{"single row", []int{40}, 40},
		{"rounds down below half", []int{50, 100, 100}, 83},
		{"rounds half up", []int{50, 51}, 51},
		{"all complete", []int{100, 100, 100}, 100},
		{"all zero", []int{0, 0, 0, 0}, 0},
		{"just under complete", []int{100, 100, 99}, 100},
		{"one percent of many", []int{1, 0, 0, 0, 0, 0}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AveragePercent(tc.percents))
		})
	}
}

func TestAveragePercent_StaysInRange(t *testing.T) {
	for a := 0; a <= 100; a += 7 {
		for b := 0; b <= 100; b += 13 {
			avg := AveragePercent([]int{a, b, 100 - a})
			assert.GreaterOrEqual(t, avg, 0)
			assert.LessOrEqual(t, avg, 100)
		}
	}
}

func TestCleaningJob_IsComplete(t *testing.T) {
	t.Run("empty job is not complete", func(t *testing.T) {
		job := jobWithPercents()
		assert.Equal(t, 0, job.OverallPercent())
		assert.False(t, job.IsComplete())
	})

	t.Run("partial progress", func(t *testing.T) {
		job := jobWithPercents(50, 100, 100)
		assert.Equal(t, 83, job.OverallPercent())
		assert.False(t, job.IsComplete())
		assert.Equal(t, 2, job.CompletedSections())
	})

	t.Run("every section complete", func(t *testing.T) {
		job := jobWithPercents(100, 100, 100)
		assert.Equal(t, 100, job.OverallPercent())
		assert.True(t, job.IsComplete())
		assert.Equal(t, 3, job.CompletedSections())
	})
}

// Rounding can lift the mean to 100 while a section is still short of it,
// so completion has to be judged on the exact mean.
func TestCleaningJob_IsComplete_RequiresEverySection(t *testing.T) {
	job := jobWithPercents(100, 100, 99)

	assert.Equal(t, 100, job.OverallPercent())
	assert.False(t, job.IsComplete())
}

func TestCleaningJob_Transition(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	later := start.Add(2 * time.Hour)

	t.Run("draft to in progress stamps startedAt once", func(t *testing.T) {
		job := &CleaningJob{Status: JobStatusDraft}

		require.NoError(t, job.Transition(JobStatusInProgress, start))
		require.NotNil(t, job.StartedAt)
		assert.Equal(t, start, *job.StartedAt)

		require.NoError(t, job.Transition(JobStatusInProgress, later))
		assert.Equal(t, start, *job.StartedAt)
		assert.Equal(t, JobStatusInProgress, job.Status)
	})

	t.Run("in progress to done stamps finishedAt once", func(t *testing.T) {
		job := &CleaningJob{Status: JobStatusInProgress, StartedAt: &start}

		require.NoError(t, job.Transition(JobStatusDone, later))
		require.NotNil(t, job.FinishedAt)
		assert.Equal(t, later, *job.FinishedAt)

		require.NoError(t, job.Transition(JobStatusDone, later.Add(time.Hour)))
		assert.Equal(t, later, *job.FinishedAt)
		assert.Equal(t, start, *job.StartedAt)
	})

	t.Run("done from draft is rejected", func(t *testing.T) {
		job := &CleaningJob{Status: JobStatusDraft}

		assert.Error(t, job.Transition(JobStatusDone, start))
		assert.Equal(t, JobStatusDraft, job.Status)
		assert.Nil(t, job.FinishedAt)
	})

	t.Run("backwards moves are rejected", func(t *testing.T) {
		done := &CleaningJob{Status: JobStatusDone}
		assert.Error(t, done.Transition(JobStatusInProgress, start))
		assert.Error(t, done.Transition(JobStatusDraft, start))

		inProgress := &CleaningJob{Status: JobStatusInProgress}
		assert.Error(t, inProgress.Transition(JobStatusDraft, start))
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		job := &CleaningJob{Status: JobStatusDraft}
		assert.Error(t, job.Transition(JobStatus("ARCHIVED"), start))
	})
}

func TestCleaningJob_IsAssignedTo(t *testing.T) {
	crewID := uuid.New()
	other := uuid.New()

	assert.False(t, (&CleaningJob{}).IsAssignedTo(crewID))
	assert.True(t, (&CleaningJob{AssignedTo: &crewID}).IsAssignedTo(crewID))
	assert.False(t, (&CleaningJob{AssignedTo: &crewID}).IsAssignedTo(other))
}

func TestSectionTemplate_ToVesselSection(t *testing.T) {
	description := "Main deck area"
	template := &SectionTemplate{Name: "Deck", Description: &description, Order: 3}
	vesselID := uuid.New()

	section := template.ToVesselSection(vesselID)

	assert.Equal(t, vesselID, section.VesselID)
	assert.Equal(t, "Deck", section.Name)
	assert.Equal(t, 3, section.Order)
	require.NotNil(t, section.Description)

	*template.Description = "changed later"
	assert.Equal(t, "Main deck area", *section.Description)
}
