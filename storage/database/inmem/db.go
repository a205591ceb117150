package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/redland/registro/core/calendar"
)

const dateLayout = "2006-01-02"

type calendarTable[T any] struct {
	mutex sync.RWMutex
	table calendar.Buckets[T]
}

// DB keeps the calendar in memory. For development and tests.
type DB struct {
	activities  *calendarTable[calendar.Activity]
	evaluations *calendarTable[calendar.Evaluation]
}

func Open() *DB {
	return &DB{
		activities:  &calendarTable[calendar.Activity]{table: make(calendar.Buckets[calendar.Activity])},
		evaluations: &calendarTable[calendar.Evaluation]{table: make(calendar.Buckets[calendar.Evaluation])},
	}
}

type calendarRepository struct {
	db *DB
}

var _ calendar.Store = (*calendarRepository)(nil)

func NewCalendarRepository(db *DB) calendar.Store {
	return &calendarRepository{db: db}
}

func (repo *calendarRepository) FetchActivities(ctx context.Context, from, to string, sec calendar.Section) (calendar.Buckets[calendar.Activity], error) {
	return fetch(ctx, repo.db.activities, from, to, sec, func(a calendar.Activity) calendar.Activity {
		a.Courses = append([]string(nil), a.Courses...)
		return a
	})
}

func (repo *calendarRepository) FetchEvaluations(ctx context.Context, from, to string, sec calendar.Section) (calendar.Buckets[calendar.Evaluation], error) {
	return fetch(ctx, repo.db.evaluations, from, to, sec, func(e calendar.Evaluation) calendar.Evaluation {
		e.Courses = append([]string(nil), e.Courses...)
		return e
	})
}

func (repo *calendarRepository) ImportActivities(ctx context.Context, b calendar.Buckets[calendar.Activity]) (int, error) {
	return store(ctx, repo.db.activities, b, func(a calendar.Activity) calendar.Activity {
		a.ID = newID(a.ID)
		a.Courses = append([]string(nil), a.Courses...)
		return a
	})
}

func (repo *calendarRepository) ImportEvaluations(ctx context.Context, b calendar.Buckets[calendar.Evaluation]) (int, error) {
	return store(ctx, repo.db.evaluations, b, func(e calendar.Evaluation) calendar.Evaluation {
		e.ID = newID(e.ID)
		e.Courses = append([]string(nil), e.Courses...)
		return e
	})
}

// fetch returns copies of the records between from and to (ISO dates, inclusive).
func fetch[T any](ctx context.Context, t *calendarTable[T], from, to string, sec calendar.Section, clone func(T) T) (calendar.Buckets[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	out := make(calendar.Buckets[T])
	for date, secs := range t.table {
		if date < from || date > to {
			continue
		}
		for _, s := range sec.Expand() {
			for _, rec := range secs[s] {
				out.Add(date, s, clone(rec))
			}
		}
	}
	return out, nil
}

func store[T any](ctx context.Context, t *calendarTable[T], b calendar.Buckets[T], prepare func(T) T) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for date, secs := range b {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return 0, errors.Wrapf(err, "invalid date %q", date)
		}
		for sec := range secs {
			if p, ok := calendar.ParseSection(string(sec)); !ok || p != sec || sec == calendar.AllSections {
				return 0, errors.Errorf("invalid section %q", sec)
			}
		}
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	var n int
	for date, secs := range b {
		for sec, recs := range secs {
			for _, rec := range recs {
				t.table.Add(date, sec, prepare(rec))
				n++
			}
		}
	}
	return n, nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
