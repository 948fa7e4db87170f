package services

import (
	"reefclean/config"
	"reefclean/internal/database"
)

type Service struct {
	Transaction  *TransactionService
	Token        *TokenService
	ReportExport *ReportExportService
}

func New(db database.DB, config config.Config) Service {
	return Service{
		Transaction:  NewTransactionService(db),
		Token:        NewTokenService(config),
		ReportExport: NewReportExportService(),
	}
}
