package controllers

import (
	"reefclean/internal/database"
	"reefclean/internal/repositories"
	"reefclean/internal/services"

	clientController "reefclean/internal/controllers/clients"
	jobController "reefclean/internal/controllers/jobs"
	progressController "reefclean/internal/controllers/progress"
	reportController "reefclean/internal/controllers/reports"
	sectionController "reefclean/internal/controllers/sections"
	userController "reefclean/internal/controllers/users"
	vesselController "reefclean/internal/controllers/vessels"
)

type Controllers struct {
	User     userController.UserControllerInterface
	Client   clientController.ClientControllerInterface
	Vessel   vesselController.VesselControllerInterface
	Section  sectionController.SectionControllerInterface
	Job      jobController.JobControllerInterface
	Progress progressController.ProgressControllerInterface
	Report   reportController.ReportControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) Controllers {
	return Controllers{
		User:     userController.New(repos, db),
		Client:   clientController.New(repos, services, db),
		Vessel:   vesselController.New(repos, services, db),
		Section:  sectionController.New(repos, services, db),
		Job:      jobController.New(repos, services, db),
		Progress: progressController.New(repos, services, db),
		Report:   reportController.New(repos, services, db),
	}
}
