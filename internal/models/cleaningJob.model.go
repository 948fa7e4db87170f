package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusDraft      JobStatus = "DRAFT"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusDone       JobStatus = "DONE"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusInProgress, JobStatusDone:
		return true
	}
	return false
}

// AllowedFrom lists the statuses a job may be in when moving to s.
// Status only moves forward; repeating the current status is a no-op.
func (s JobStatus) AllowedFrom() []JobStatus {
	switch s {
	case JobStatusDraft:
		return []JobStatus{JobStatusDraft}
	case JobStatusInProgress:
		return []JobStatus{JobStatusDraft, JobStatusInProgress}
	case JobStatusDone:
		return []JobStatus{JobStatusInProgress, JobStatusDone}
	}
	return nil
}

type CleaningJob struct {
	BaseUUIDModel
	VesselID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_cleaning_jobs_vessel"   json:"vesselId"`
	Status      JobStatus  `gorm:"type:text;not null;default:'DRAFT';index:idx_cleaning_jobs_status" json:"status"`
	ScheduledAt *time.Time `gorm:"type:timestamp;index:idx_cleaning_jobs_scheduled_at"  json:"scheduledAt,omitempty"`
	StartedAt   *time.Time `gorm:"type:timestamp"                                       json:"startedAt,omitempty"`
	FinishedAt  *time.Time `gorm:"type:timestamp"                                       json:"finishedAt,omitempty"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index:idx_cleaning_jobs_assigned_to"        json:"assignedTo,omitempty"`
	Notes       *string    `gorm:"type:text"                                            json:"notes,omitempty"`

	Vessel   *Vessel           `gorm:"foreignKey:VesselID;constraint:OnDelete:CASCADE"   json:"vessel,omitempty"`
	Assignee *User             `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"-"`
	Progress []SectionProgress `gorm:"foreignKey:CleaningJobID;constraint:OnDelete:CASCADE" json:"progress,omitempty"`
}

func (j *CleaningJob) BeforeCreate(tx *gorm.DB) error {
	if err := j.assignID(); err != nil {
		return err
	}
	if j.VesselID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if j.Status == "" {
		j.Status = JobStatusDraft
	}
	return nil
}

func (j *CleaningJob) IsAssignedTo(userID uuid.UUID) bool {
	return j.AssignedTo != nil && *j.AssignedTo == userID
}

// CanTransitionTo reports whether the job may move to target from its
// current status.
func (j *CleaningJob) CanTransitionTo(target JobStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("unknown job status %q", target)
	}
	if !slices.Contains(target.AllowedFrom(), j.Status) {
		return fmt.Errorf("cannot move job from %s to %s", j.Status, target)
	}
	return nil
}

// Transition applies target in memory. startedAt and finishedAt are only
// stamped on first entry into their status.
func (j *CleaningJob) Transition(target JobStatus, now time.Time) error {
	if err := j.CanTransitionTo(target); err != nil {
		return err
	}

	j.Status = target
	switch target {
	case JobStatusInProgress:
		if j.StartedAt == nil {
			j.StartedAt = &now
		}
	case JobStatusDone:
		if j.FinishedAt == nil {
			j.FinishedAt = &now
		}
	}
	return nil
}

// AveragePercent is the round-half-up mean of percents, or 0 when empty.
func AveragePercent(percents []int) int {
	if len(percents) == 0 {
		return 0
	}

	sum := 0
	for _, p := range percents {
		sum += p
	}

	n := len(percents)
	return (2*sum + n) / (2 * n)
}

func (j *CleaningJob) progressPercents() []int {
	percents := make([]int, len(j.Progress))
	for i, p := range j.Progress {
		percents[i] = p.Percent
	}
	return percents
}

// OverallPercent is computed from the loaded Progress rows and never stored.
func (j *CleaningJob) OverallPercent() int {
	return AveragePercent(j.progressPercents())
}

// IsComplete compares the exact mean against 100, which holds only when
// every section is at 100. The rounded OverallPercent can reach 100 earlier.
func (j *CleaningJob) IsComplete() bool {
	return IsCompletePercents(j.progressPercents())
}

func IsCompletePercents(percents []int) bool {
	if len(percents) == 0 {
		return false
	}

	sum := 0
	for _, p := range percents {
		sum += p
	}
	return sum == MaxPercent*len(percents)
}

func (j *CleaningJob) CompletedSections() int {
	completed := 0
	for _, p := range j.Progress {
		if p.Percent == 100 {
			completed++
		}
	}
	return completed
}
