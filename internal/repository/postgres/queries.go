package postgres

const (
	lockGeneralQuery = `
		SELECT p.osm_id, g.accessibility, g.indoor_accessibility, g.additional_info, g.user_modified
		FROM general_accessibility g
		JOIN places p ON p.id = g.place_id
		WHERE p.osm_id = ANY($1)
		FOR UPDATE OF g
	`

	lockEntranceQuery = `
		SELECT p.osm_id, e.accessibility, e.step_count, e.step_height, e.ramp, e.lift,
			e.entrance_width, e.door_type, e.user_modified
		FROM entrance_accessibility e
		JOIN places p ON p.id = e.place_id
		WHERE p.osm_id = ANY($1)
		FOR UPDATE OF e
	`

	lockRestroomQuery = `
		SELECT p.osm_id, r.accessibility, r.door_width, r.room_maneuver, r.grab_rails, r.sink,
			r.toilet_seat, r.emergency_alarm, r.euro_key, r.user_modified
		FROM restroom_accessibility r
		JOIN places p ON p.id = r.place_id
		WHERE p.osm_id = ANY($1)
		FOR UPDATE OF r
	`

	upsertPlaceQuery = `
		INSERT INTO places (osm_id, name, category, lat, lon, geom, region)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($5, $4), 4326), $6)
		ON CONFLICT (osm_id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			geom = EXCLUDED.geom,
			region = EXCLUDED.region,
			updated_at = NOW()
		RETURNING id
	`

	// user_modified is owned by the editing surface and never written here.
	upsertGeneralQuery = `
		INSERT INTO general_accessibility (place_id, accessibility, indoor_accessibility, additional_info)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (place_id) DO UPDATE SET
			accessibility = EXCLUDED.accessibility,
			indoor_accessibility = EXCLUDED.indoor_accessibility,
			additional_info = EXCLUDED.additional_info,
			updated_at = NOW()
	`

	upsertEntranceQuery = `
		INSERT INTO entrance_accessibility
			(place_id, accessibility, step_count, step_height, ramp, lift, entrance_width, door_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (place_id) DO UPDATE SET
			accessibility = EXCLUDED.accessibility,
			step_count = EXCLUDED.step_count,
			step_height = EXCLUDED.step_height,
			ramp = EXCLUDED.ramp,
			lift = EXCLUDED.lift,
			entrance_width = EXCLUDED.entrance_width,
			door_type = EXCLUDED.door_type,
			updated_at = NOW()
	`

	upsertRestroomQuery = `
		INSERT INTO restroom_accessibility
			(place_id, accessibility, door_width, room_maneuver, grab_rails, sink, toilet_seat, emergency_alarm, euro_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (place_id) DO UPDATE SET
			accessibility = EXCLUDED.accessibility,
			door_width = EXCLUDED.door_width,
			room_maneuver = EXCLUDED.room_maneuver,
			grab_rails = EXCLUDED.grab_rails,
			sink = EXCLUDED.sink,
			toilet_seat = EXCLUDED.toilet_seat,
			emergency_alarm = EXCLUDED.emergency_alarm,
			euro_key = EXCLUDED.euro_key,
			updated_at = NOW()
	`

	upsertContactQuery = `
		INSERT INTO contact (place_id, address, phone, email, website)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (place_id) DO UPDATE SET
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			website = EXCLUDED.website,
			updated_at = NOW()
	`

	getPlaceQuery = `
		SELECT
			p.osm_id, p.name, p.category, p.lat, p.lon, p.region,
			c.address, c.phone, c.email, c.website,
			g.accessibility AS g_accessibility, g.indoor_accessibility AS g_indoor_accessibility,
			g.additional_info AS g_additional_info, COALESCE(g.user_modified, false) AS g_user_modified,
			e.accessibility AS e_accessibility, e.step_count AS e_step_count, e.step_height AS e_step_height,
			e.ramp AS e_ramp, e.lift AS e_lift, e.entrance_width AS e_entrance_width,
			e.door_type AS e_door_type, COALESCE(e.user_modified, false) AS e_user_modified,
			r.accessibility AS r_accessibility, r.door_width AS r_door_width, r.room_maneuver AS r_room_maneuver,
			r.grab_rails AS r_grab_rails, r.sink AS r_sink, r.toilet_seat AS r_toilet_seat,
			r.emergency_alarm AS r_emergency_alarm, r.euro_key AS r_euro_key,
			COALESCE(r.user_modified, false) AS r_user_modified
		FROM places p
		LEFT JOIN contact c ON c.place_id = p.id
		LEFT JOIN general_accessibility g ON g.place_id = p.id
		LEFT JOIN entrance_accessibility e ON e.place_id = p.id
		LEFT JOIN restroom_accessibility r ON r.place_id = p.id
		WHERE p.osm_id = $1
	`
)
