package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/redland/registro/core/calendar"
	"github.com/redland/registro/storage/database"
)

// DatabaseURLEnv names the variable holding the DSN of a disposable Postgres database.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// PrepareDB opens and migrates the test database, emptying the calendar tables.
// The test is skipped when no database is configured.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", DatabaseURLEnv)
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("PrepareDB(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("PrepareDB(): %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB(): %v", err)
	}
	if _, err := db.Exec(`TRUNCATE activity, evaluation`); err != nil {
		t.Fatalf("PrepareDB(): %v", err)
	}
	return db
}

// SeedWeek returns a small week of records across the three sections.
func SeedWeek() (calendar.Buckets[calendar.Activity], calendar.Buckets[calendar.Evaluation]) {
	acts := make(calendar.Buckets[calendar.Activity])
	for _, sec := range calendar.Sections {
		acts.Add("2026-03-02", sec, calendar.Activity{Title: "Acto Inicio de Año", Time: calendar.AllDay, Location: "Gimnasio", Courses: []string{calendar.CoursesFor(sec)[0]}})
	}
	acts.Add("2026-03-02", calendar.SectionMiddle, calendar.Activity{Title: "Reunión de apoderados", Time: "18:30", Owner: "Dirección", Courses: []string{"6° A", "6° B"}, Important: true})
	acts.Add("2026-03-04", calendar.SectionSenior, calendar.Activity{Title: "Salida pedagógica", Time: "08:00", Location: "Museo", Courses: []string{"II EM AB"}})

	evals := make(calendar.Buckets[calendar.Evaluation])
	evals.Add("2026-03-03", calendar.SectionMiddle, calendar.Evaluation{Subject: "Matemáticas", Topic: "Fracciones", Time: "10:00", Courses: []string{"7° B"}})
	evals.Add("2026-03-03", calendar.SectionMiddle, calendar.Evaluation{Subject: "Historia", Courses: []string{"7° A"}})
	evals.Add("2026-03-05", calendar.SectionSenior, calendar.Evaluation{Subject: "Química", Topic: "Estequiometría", Courses: []string{"III EM A", "III EM B"}})
	return acts, evals
}
