package postgres

import (
	"context"

	"github.com/eventdesk/registry/internal/registry/domain"
)

type eventsRepo struct {
	db querier
}

const eventColumns = `e.event_id, e.title, e.description, e.start_date, e.end_date,
       e.location_id, l.name, e.category_id, e.format, e.max_participants,
       e.target_audience, e.status`

// ListActiveEvents joins each event to its location; the inner join excludes
// events whose location row is missing.
func (r *eventsRepo) ListActiveEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events e
		 JOIN locations l ON e.location_id = l.location_id
		 WHERE e.status = $1
		 ORDER BY e.start_date`, domain.EventStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id int64) (domain.Event, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+`
		 FROM events e
		 JOIN locations l ON e.location_id = l.location_id
		 WHERE e.event_id = $1`, id)

	ev, err := scanEvent(row.Scan)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	return ev, nil
}

func (r *eventsRepo) CreateLocation(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO locations (name) VALUES ($1) RETURNING location_id`, name).Scan(&id)
	return id, err
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO events (title, description, start_date, end_date, location_id,
		                     category_id, format, max_participants, target_audience, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING event_id`,
		e.Title, e.Description, e.StartDate, e.EndDate, e.LocationID,
		e.CategoryID, e.Format, e.MaxParticipants, e.TargetAudience, e.Status).Scan(&id)
	return id, err
}

func scanEvent(scan func(...any) error) (domain.Event, error) {
	var ev domain.Event
	err := scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.StartDate,
		&ev.EndDate,
		&ev.LocationID,
		&ev.Location.Name,
		&ev.CategoryID,
		&ev.Format,
		&ev.MaxParticipants,
		&ev.TargetAudience,
		&ev.Status,
	)
	if err != nil {
		return domain.Event{}, err
	}

	ev.Location.ID = ev.LocationID
	return ev, nil
}
