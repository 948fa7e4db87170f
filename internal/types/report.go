package types

import (
	"time"

	"github.com/google/uuid"
)

// ReportSummaryRow is one job line in the summary report and its xlsx export.
type ReportSummaryRow struct {
	JobID             uuid.UUID `json:"jobId"`
	ClientName        string    `json:"clientName"`
	VesselName        string    `json:"vesselName"`
	Date              time.Time `json:"date"`
	Status            string    `json:"status"`
	TotalSections     int       `json:"totalSections"`
	CompletedSections int       `json:"completedSections"`
	AveragePercent    int       `json:"averagePercent"`
}

type ReportSummary struct {
	From time.Time          `json:"from"`
	To   time.Time          `json:"to"`
	Rows []ReportSummaryRow `json:"rows"`
}
