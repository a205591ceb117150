package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/redland/registro/core/calendar"
)

const (
	activityColumns   = `id, to_char(day, 'YYYY-MM-DD') AS day, section, title, time, location, owner, courses, important`
	evaluationColumns = `id, to_char(day, 'YYYY-MM-DD') AS day, section, subject, topic, time, courses`

	insertActivity = `INSERT INTO activity (id, day, section, title, time, location, owner, courses, important)
VALUES (:id, :day, :section, :title, :time, :location, :owner, :courses, :important)
ON CONFLICT (id) DO NOTHING`
	insertEvaluation = `INSERT INTO evaluation (id, day, section, subject, topic, time, courses)
VALUES (:id, :day, :section, :subject, :topic, :time, :courses)
ON CONFLICT (id) DO NOTHING`
)

type (
	activityRow struct {
		ID        string         `db:"id"`
		Day       string         `db:"day"`
		Section   string         `db:"section"`
		Title     string         `db:"title"`
		Time      string         `db:"time"`
		Location  null.String    `db:"location"`
		Owner     null.String    `db:"owner"`
		Courses   pq.StringArray `db:"courses"`
		Important bool           `db:"important"`
	}

	evaluationRow struct {
		ID      string         `db:"id"`
		Day     string         `db:"day"`
		Section string         `db:"section"`
		Subject string         `db:"subject"`
		Topic   null.String    `db:"topic"`
		Time    null.String    `db:"time"`
		Courses pq.StringArray `db:"courses"`
	}
)

func (r activityRow) record() calendar.Activity {
	return calendar.RawActivity{
		ID:        r.ID,
		Title:     r.Title,
		Time:      r.Time,
		Location:  r.Location.String,
		Owner:     r.Owner.String,
		Courses:   []string(r.Courses),
		Important: r.Important,
	}.Normalize()
}

func (r evaluationRow) record() calendar.Evaluation {
	return calendar.RawEvaluation{
		ID:      r.ID,
		Subject: r.Subject,
		Topic:   r.Topic.String,
		Time:    r.Time.String,
		Courses: []string(r.Courses),
	}.Normalize()
}

func newActivityRow(date string, sec calendar.Section, a calendar.Activity) activityRow {
	return activityRow{
		ID:        newID(a.ID),
		Day:       date,
		Section:   string(sec),
		Title:     a.Title,
		Time:      a.Time,
		Location:  null.NewString(a.Location, a.Location != ""),
		Owner:     null.NewString(a.Owner, a.Owner != ""),
		Courses:   pq.StringArray(nonNil(a.Courses)),
		Important: a.Important,
	}
}

func newEvaluationRow(date string, sec calendar.Section, e calendar.Evaluation) evaluationRow {
	return evaluationRow{
		ID:      newID(e.ID),
		Day:     date,
		Section: string(sec),
		Subject: e.Subject,
		Topic:   null.NewString(e.Topic, e.Topic != ""),
		Time:    null.NewString(e.Time, e.Time != ""),
		Courses: pq.StringArray(nonNil(e.Courses)),
	}
}

func newID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.New().String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type calendarRepository struct {
	db *sqlx.DB
}

var _ calendar.Store = (*calendarRepository)(nil)

func NewCalendarRepository(db *sqlx.DB) calendar.Store {
	return &calendarRepository{db: db}
}

// rangeQuery selects the rows of table between two dates, optionally for a single section.
func rangeQuery(columns, table, from, to string, sec calendar.Section) (string, []interface{}) {
	q := `SELECT ` + columns + ` FROM ` + table + ` WHERE day BETWEEN $1 AND $2`
	args := []interface{}{from, to}
	if sec != "" && sec != calendar.AllSections {
		q += ` AND section = $3`
		args = append(args, string(sec))
	}
	return q + ` ORDER BY day, seq`, args
}

func (repo calendarRepository) FetchActivities(ctx context.Context, from, to string, sec calendar.Section) (calendar.Buckets[calendar.Activity], error) {
	q, args := rangeQuery(activityColumns, "activity", from, to, sec)
	var rows []activityRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting activities")
	}
	out := make(calendar.Buckets[calendar.Activity])
	for _, r := range rows {
		out.Add(r.Day, calendar.Section(r.Section), r.record())
	}
	return out, nil
}

func (repo calendarRepository) FetchEvaluations(ctx context.Context, from, to string, sec calendar.Section) (calendar.Buckets[calendar.Evaluation], error) {
	q, args := rangeQuery(evaluationColumns, "evaluation", from, to, sec)
	var rows []evaluationRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting evaluations")
	}
	out := make(calendar.Buckets[calendar.Evaluation])
	for _, r := range rows {
		out.Add(r.Day, calendar.Section(r.Section), r.record())
	}
	return out, nil
}

func (repo calendarRepository) ImportActivities(ctx context.Context, b calendar.Buckets[calendar.Activity]) (int, error) {
	var rows []interface{}
	for _, date := range b.Dates() {
		if err := checkSections(b[date]); err != nil {
			return 0, err
		}
		for _, sec := range calendar.Sections {
			for _, a := range b[date][sec] {
				rows = append(rows, newActivityRow(date, sec, a))
			}
		}
	}
	return repo.insert(ctx, insertActivity, rows)
}

func (repo calendarRepository) ImportEvaluations(ctx context.Context, b calendar.Buckets[calendar.Evaluation]) (int, error) {
	var rows []interface{}
	for _, date := range b.Dates() {
		if err := checkSections(b[date]); err != nil {
			return 0, err
		}
		for _, sec := range calendar.Sections {
			for _, e := range b[date][sec] {
				rows = append(rows, newEvaluationRow(date, sec, e))
			}
		}
	}
	return repo.insert(ctx, insertEvaluation, rows)
}

func checkSections[T any](secs calendar.SectionMap[T]) error {
	for sec := range secs {
		if p, ok := calendar.ParseSection(string(sec)); !ok || p != sec || sec == calendar.AllSections {
			return errors.Errorf("invalid section %q", sec)
		}
	}
	return nil
}

// insert runs query once per row inside a single transaction.
func (repo calendarRepository) insert(ctx context.Context, query string, rows []interface{}) (n int, err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, errors.Wrap(err, "preparing insert")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer stmt.Close()

	for _, row := range rows {
		res, err := stmt.ExecContext(ctx, row)
		if err != nil {
			return 0, errors.Wrap(err, "inserting record")
		}
		if affected, err := res.RowsAffected(); err == nil {
			n += int(affected)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing import")
	}
	return n, nil
}
