package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain/repository"
	"github.com/inwheel/accessibility-importer/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPlaceRepositoryForTest creates a place repository over the test database
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	return postgres.NewPlaceRepository(NewDBForTest(db, logger))
}
