package repositories

import (
	"reefclean/internal/database"
)

type Repository struct {
	User     UserRepository
	Client   ClientRepository
	Vessel   VesselRepository
	Section  SectionRepository
	Job      JobRepository
	Progress ProgressRepository
	Report   ReportRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:     NewUserRepository(db),
		Client:   NewClientRepository(),
		Vessel:   NewVesselRepository(),
		Section:  NewSectionRepository(db.Cache.General),
		Job:      NewJobRepository(),
		Progress: NewProgressRepository(),
		Report:   NewReportRepository(),
	}
}
