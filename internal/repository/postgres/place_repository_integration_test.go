package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
	"github.com/inwheel/accessibility-importer/internal/repository/postgres/testhelpers"
)

// PlaceRepositorySuite runs the committer against a real PostGIS database.
type PlaceRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.PlaceRepository
	ctx    context.Context
}

func (s *PlaceRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	// Tables may already exist from an earlier run
	_ = testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")

	s.repo = testhelpers.NewPlaceRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *PlaceRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *PlaceRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func restroomPlace(doorWidth domain.AccessibilityStatus) *domain.Place {
	return &domain.Place{
		OSMID:    424242,
		Name:     "Stadtbibliothek",
		Category: "library",
		Lat:      47.05,
		Lon:      8.31,
		Region:   "switzerland",
		General:  domain.GeneralAccessibility{Accessibility: domain.FullyAccessible.Ptr()},
		Restroom: domain.RestroomAccessibility{DoorWidth: doorWidth.Ptr()},
	}
}

func (s *PlaceRepositorySuite) TestApplyBatch_InsertsAllTables() {
	result, err := s.repo.ApplyBatch(s.ctx, []*domain.Place{restroomPlace(domain.PartiallyAccessible)}, false)
	s.Require().NoError(err)
	s.Equal(1, result.Places)
	s.Equal(0, result.FacetsRetained)

	place, err := s.repo.GetByOSMID(s.ctx, 424242)
	s.Require().NoError(err)
	s.Equal("Stadtbibliothek", place.Name)
	s.Equal(domain.FullyAccessible.Ptr(), place.General.Accessibility)
	s.Equal(domain.PartiallyAccessible.Ptr(), place.Restroom.DoorWidth)
	s.False(place.RestroomUserModified)
}

func (s *PlaceRepositorySuite) TestApplyBatch_UserModifiedRestroom() {
	_, err := s.repo.ApplyBatch(s.ctx, []*domain.Place{restroomPlace(domain.PartiallyAccessible)}, false)
	s.Require().NoError(err)
	s.Require().NoError(testhelpers.MarkUserModified(s.testDB.DB.DB, "restroom_accessibility", 424242))

	result, err := s.repo.ApplyBatch(s.ctx, []*domain.Place{restroomPlace(domain.NotAccessible)}, false)
	s.Require().NoError(err)
	s.Equal(1, result.FacetsRetained)

	place, err := s.repo.GetByOSMID(s.ctx, 424242)
	s.Require().NoError(err)
	s.Equal(domain.PartiallyAccessible.Ptr(), place.Restroom.DoorWidth)
	s.True(place.RestroomUserModified)

	_, err = s.repo.ApplyBatch(s.ctx, []*domain.Place{restroomPlace(domain.NotAccessible)}, true)
	s.Require().NoError(err)

	place, err = s.repo.GetByOSMID(s.ctx, 424242)
	s.Require().NoError(err)
	s.Equal(domain.NotAccessible.Ptr(), place.Restroom.DoorWidth)
	s.True(place.RestroomUserModified, "flag stays owned by the editing surface")
}

func (s *PlaceRepositorySuite) TestGetByOSMID_NotFound() {
	place, err := s.repo.GetByOSMID(s.ctx, 1)
	s.Error(err)
	s.Nil(place)
}

func TestPlaceRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(PlaceRepositorySuite))
}
