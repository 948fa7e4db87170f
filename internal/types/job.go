package types

import (
	"reefclean/internal/models"
)

// JobView is a cleaning job as returned to callers, with the rollup computed
// from its loaded progress rows.
//
// OverallPercent is the rounded mean while IsComplete requires every section
// at 100, so the two can disagree: sections at [100, 99] report
// OverallPercent 100 with IsComplete false. Clients should gate completion
// on IsComplete.
type JobView struct {
	*models.CleaningJob
	Assignee          *models.UserSummary `json:"assignee,omitempty"`
	OverallPercent    int                 `json:"overallPercent"`
	IsComplete        bool                `json:"isComplete"`
	TotalSections     int                 `json:"totalSections"`
	CompletedSections int                 `json:"completedSections"`
}

func NewJobView(job *models.CleaningJob) JobView {
	return JobView{
		CleaningJob:       job,
		Assignee:          job.Assignee.ToSummary(),
		OverallPercent:    job.OverallPercent(),
		IsComplete:        job.IsComplete(),
		TotalSections:     len(job.Progress),
		CompletedSections: job.CompletedSections(),
	}
}

func NewJobViews(jobs []*models.CleaningJob) []JobView {
	views := make([]JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, NewJobView(job))
	}
	return views
}

// VesselDetail carries a vessel with its recent jobs rolled up.
type VesselDetail struct {
	*models.Vessel
	Jobs []JobView `json:"jobs"`
}

func NewVesselDetail(vessel *models.Vessel) VesselDetail {
	jobs := make([]*models.CleaningJob, 0, len(vessel.Jobs))
	for i := range vessel.Jobs {
		jobs = append(jobs, &vessel.Jobs[i])
	}
	return VesselDetail{Vessel: vessel, Jobs: NewJobViews(jobs)}
}
