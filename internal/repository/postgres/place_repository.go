package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
	"github.com/inwheel/accessibility-importer/internal/merge"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type generalRow struct {
	OSMID int64 `db:"osm_id"`
	domain.GeneralAccessibility
	UserModified bool `db:"user_modified"`
}

type entranceRow struct {
	OSMID int64 `db:"osm_id"`
	domain.EntranceAccessibility
	UserModified bool `db:"user_modified"`
}

type restroomRow struct {
	OSMID int64 `db:"osm_id"`
	domain.RestroomAccessibility
	UserModified bool `db:"user_modified"`
}

// ApplyBatch merges and writes a batch of places in one transaction. The stored
// facets are locked first so the user_modified flags read are the ones the
// writes are decided on. Any failure rolls the whole batch back.
func (r *placeRepository) ApplyBatch(ctx context.Context, places []*domain.Place, overwrite bool) (domain.BatchResult, error) {
	var result domain.BatchResult
	if len(places) == 0 {
		return result, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !stderrors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("Failed to roll back batch", zap.Error(rbErr))
			}
		}
	}()

	stored, err := r.lockFacets(ctx, tx, places)
	if err != nil {
		return result, err
	}

	for _, place := range places {
		plan := merge.Place(place, stored[place.OSMID], overwrite)
		if err := r.writePlace(ctx, tx, plan.Place); err != nil {
			return result, fmt.Errorf("osm_id %d: %w", place.OSMID, err)
		}
		result.FacetsRetained += plan.Retained()
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit: %w", err)
	}
	committed = true
	result.Places = len(places)

	return result, nil
}

func (r *placeRepository) lockFacets(ctx context.Context, tx *sqlx.Tx, places []*domain.Place) (map[int64]domain.StoredFacets, error) {
	ids := make([]int64, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.OSMID)
	}

	stored := make(map[int64]domain.StoredFacets, len(places))

	var general []generalRow
	if err := tx.SelectContext(ctx, &general, lockGeneralQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("lock general_accessibility: %w", err)
	}
	for _, row := range general {
		facets := stored[row.OSMID]
		facets.General = &domain.Persisted[domain.GeneralAccessibility]{Value: row.GeneralAccessibility, UserModified: row.UserModified}
		stored[row.OSMID] = facets
	}

	var entrance []entranceRow
	if err := tx.SelectContext(ctx, &entrance, lockEntranceQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("lock entrance_accessibility: %w", err)
	}
	for _, row := range entrance {
		facets := stored[row.OSMID]
		facets.Entrance = &domain.Persisted[domain.EntranceAccessibility]{Value: row.EntranceAccessibility, UserModified: row.UserModified}
		stored[row.OSMID] = facets
	}

	var restroom []restroomRow
	if err := tx.SelectContext(ctx, &restroom, lockRestroomQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("lock restroom_accessibility: %w", err)
	}
	for _, row := range restroom {
		facets := stored[row.OSMID]
		facets.Restroom = &domain.Persisted[domain.RestroomAccessibility]{Value: row.RestroomAccessibility, UserModified: row.UserModified}
		stored[row.OSMID] = facets
	}

	return stored, nil
}

func (r *placeRepository) writePlace(ctx context.Context, tx *sqlx.Tx, p *domain.Place) error {
	var placeID int64
	err := tx.QueryRowxContext(ctx, upsertPlaceQuery,
		p.OSMID, p.Name, p.Category, p.Lat, p.Lon, p.Region,
	).Scan(&placeID)
	if err != nil {
		return fmt.Errorf("upsert place: %w", err)
	}

	g := p.General
	if _, err := tx.ExecContext(ctx, upsertGeneralQuery,
		placeID, g.Accessibility, g.IndoorAccessibility, g.AdditionalInfo,
	); err != nil {
		return fmt.Errorf("upsert general_accessibility: %w", err)
	}

	e := p.Entrance
	if _, err := tx.ExecContext(ctx, upsertEntranceQuery,
		placeID, e.Accessibility, e.StepCount, e.StepHeight, e.Ramp, e.Lift, e.EntranceWidth, e.DoorType,
	); err != nil {
		return fmt.Errorf("upsert entrance_accessibility: %w", err)
	}

	rr := p.Restroom
	if _, err := tx.ExecContext(ctx, upsertRestroomQuery,
		placeID, rr.Accessibility, rr.DoorWidth, rr.RoomManeuver, rr.GrabRails, rr.Sink,
		rr.ToiletSeat, rr.EmergencyAlarm, rr.EuroKey,
	); err != nil {
		return fmt.Errorf("upsert restroom_accessibility: %w", err)
	}

	c := p.Contact
	if _, err := tx.ExecContext(ctx, upsertContactQuery,
		placeID, c.Address, c.Phone, c.Email, c.Website,
	); err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}

	return nil
}

type placeDetailsRow struct {
	OSMID    int64   `db:"osm_id"`
	Name     string  `db:"name"`
	Category string  `db:"category"`
	Lat      float64 `db:"lat"`
	Lon      float64 `db:"lon"`
	Region   string  `db:"region"`

	domain.Contact

	GAccessibility       *domain.AccessibilityStatus `db:"g_accessibility"`
	GIndoorAccessibility *domain.AccessibilityStatus `db:"g_indoor_accessibility"`
	GAdditionalInfo      *string                     `db:"g_additional_info"`
	GUserModified        bool                        `db:"g_user_modified"`

	EAccessibility *domain.AccessibilityStatus `db:"e_accessibility"`
	EStepCount     *domain.AccessibilityStatus `db:"e_step_count"`
	EStepHeight    *domain.AccessibilityStatus `db:"e_step_height"`
	ERamp          *domain.AccessibilityStatus `db:"e_ramp"`
	ELift          *domain.AccessibilityStatus `db:"e_lift"`
	EEntranceWidth *domain.AccessibilityStatus `db:"e_entrance_width"`
	EDoorType      *string                     `db:"e_door_type"`
	EUserModified  bool                        `db:"e_user_modified"`

	RAccessibility  *domain.AccessibilityStatus `db:"r_accessibility"`
	RDoorWidth      *domain.AccessibilityStatus `db:"r_door_width"`
	RRoomManeuver   *domain.AccessibilityStatus `db:"r_room_maneuver"`
	RGrabRails      *domain.AccessibilityStatus `db:"r_grab_rails"`
	RSink           *domain.AccessibilityStatus `db:"r_sink"`
	RToiletSeat     *domain.AccessibilityStatus `db:"r_toilet_seat"`
	REmergencyAlarm *domain.AccessibilityStatus `db:"r_emergency_alarm"`
	REuroKey        *bool                       `db:"r_euro_key"`
	RUserModified   bool                        `db:"r_user_modified"`
}

func (row placeDetailsRow) toDomain() *domain.PlaceDetails {
	return &domain.PlaceDetails{
		Place: domain.Place{
			OSMID:    row.OSMID,
			Name:     row.Name,
			Category: row.Category,
			Lat:      row.Lat,
			Lon:      row.Lon,
			Region:   row.Region,
			Contact:  row.Contact,
			General: domain.GeneralAccessibility{
				Accessibility:       row.GAccessibility,
				IndoorAccessibility: row.GIndoorAccessibility,
				AdditionalInfo:      row.GAdditionalInfo,
			},
			Entrance: domain.EntranceAccessibility{
				Accessibility: row.EAccessibility,
				StepCount:     row.EStepCount,
				StepHeight:    row.EStepHeight,
				Ramp:          row.ERamp,
				Lift:          row.ELift,
				EntranceWidth: row.EEntranceWidth,
				DoorType:      row.EDoorType,
			},
			Restroom: domain.RestroomAccessibility{
				Accessibility:  row.RAccessibility,
				DoorWidth:      row.RDoorWidth,
				RoomManeuver:   row.RRoomManeuver,
				GrabRails:      row.RGrabRails,
				Sink:           row.RSink,
				ToiletSeat:     row.RToiletSeat,
				EmergencyAlarm: row.REmergencyAlarm,
				EuroKey:        row.REuroKey,
			},
		},
		GeneralUserModified:  row.GUserModified,
		EntranceUserModified: row.EUserModified,
		RestroomUserModified: row.RUserModified,
	}
}

func (r *placeRepository) GetByOSMID(ctx context.Context, osmID int64) (*domain.PlaceDetails, error) {
	var row placeDetailsRow
	err := r.db.GetContext(ctx, &row, getPlaceQuery, osmID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place", zap.Int64("osm_id", osmID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}
