package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	age             INTEGER NOT NULL,
	life_expectancy INTEGER NOT NULL,
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS survival (
	user_id                   INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	sleep_hours_per_day       REAL NOT NULL,
	work_hours_per_day        REAL NOT NULL,
	work_days_per_week        REAL NOT NULL,
	commute_hours_per_workday REAL NOT NULL,
	daily_routine_hours       REAL NOT NULL,
	remaining_years           REAL NOT NULL,
	sleep_years               REAL NOT NULL,
	work_years                REAL NOT NULL,
	commute_years             REAL NOT NULL,
	routine_years             REAL NOT NULL,
	free_years                REAL NOT NULL,
	updated_at                TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS activities (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id        INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category       TEXT NOT NULL,
	name           TEXT NOT NULL,
	hours_per_week REAL NOT NULL DEFAULT 0,
	source         TEXT NOT NULL DEFAULT '',
	is_active      INTEGER NOT NULL DEFAULT 1,
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, category, name)
);
`

// queryExecutor abstracts sql.DB and sql.Tx.
type queryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite serializes writers; a single connection also keeps ":memory:" coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) CreateUser(ctx context.Context, age, lifeExpectancy int) (life.UserContext, error) {
	u := life.UserContext{Age: age, LifeExpectancy: lifeExpectancy}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (age, life_expectancy) VALUES (?, ?) RETURNING id`,
		age, lifeExpectancy,
	).Scan(&u.ID)
	if err != nil {
		return life.UserContext{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *SQLite) GetUser(ctx context.Context, id int64) (life.UserContext, error) {
	var u life.UserContext
	err := s.db.QueryRowContext(ctx,
		`SELECT id, age, life_expectancy FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Age, &u.LifeExpectancy)
	if err == sql.ErrNoRows {
		return life.UserContext{}, errors.NewNotFoundError("user", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return life.UserContext{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *SQLite) SaveSurvival(ctx context.Context, userID int64, in life.SurvivalInputs, r life.SurvivalResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO survival (
			user_id, sleep_hours_per_day, work_hours_per_day, work_days_per_week,
			commute_hours_per_workday, daily_routine_hours,
			remaining_years, sleep_years, work_years, commute_years, routine_years, free_years
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			sleep_hours_per_day       = excluded.sleep_hours_per_day,
			work_hours_per_day        = excluded.work_hours_per_day,
			work_days_per_week        = excluded.work_days_per_week,
			commute_hours_per_workday = excluded.commute_hours_per_workday,
			daily_routine_hours       = excluded.daily_routine_hours,
			remaining_years           = excluded.remaining_years,
			sleep_years               = excluded.sleep_years,
			work_years                = excluded.work_years,
			commute_years             = excluded.commute_years,
			routine_years             = excluded.routine_years,
			free_years                = excluded.free_years,
			updated_at                = CURRENT_TIMESTAMP`,
		userID, in.SleepHoursPerDay, in.WorkHoursPerDay, in.WorkDaysPerWeek,
		in.CommuteHoursPerWorkday, in.DailyRoutineHours,
		r.Remaining(), r.SleepYears, r.WorkYears, r.CommuteYears, r.RoutineYears, r.FreeYears,
	)
	if err != nil {
		return fmt.Errorf("save survival: %w", err)
	}
	return nil
}

func (s *SQLite) GetSurvival(ctx context.Context, userID int64) (life.SurvivalResult, error) {
	var (
		r         life.SurvivalResult
		remaining float64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT remaining_years, sleep_years, work_years, commute_years, routine_years, free_years
		FROM survival WHERE user_id = ?`, userID,
	).Scan(&remaining, &r.SleepYears, &r.WorkYears, &r.CommuteYears, &r.RoutineYears, &r.FreeYears)
	if err == sql.ErrNoRows {
		return life.SurvivalResult{}, errors.NewNotFoundError("survival result", strconv.FormatInt(userID, 10))
	}
	if err != nil {
		return life.SurvivalResult{}, fmt.Errorf("get survival: %w", err)
	}
	r.RemainingYears = &remaining
	return r, nil
}

const activityColumns = `id, name, hours_per_week, source, is_active`

func scanActivity(row scanner) (life.Activity, error) {
	var a life.Activity
	err := row.Scan(&a.ID, &a.Label, &a.HoursPerWeek, &a.Source, &a.IsActive)
	return a, err
}

func (s *SQLite) UpsertActivity(ctx context.Context, c Category, userID int64, label string, hoursPerWeek float64, source string) (life.Activity, error) {
	a, err := scanActivity(s.db.QueryRowContext(ctx, `
		INSERT INTO activities (user_id, category, name, hours_per_week, source)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, name) DO UPDATE SET
			hours_per_week = excluded.hours_per_week,
			is_active      = 1
		RETURNING `+activityColumns,
		userID, string(c), label, hoursPerWeek, source,
	))
	if err != nil {
		return life.Activity{}, fmt.Errorf("upsert %s activity: %w", c, err)
	}
	return a, nil
}

func (s *SQLite) UpdateActivity(ctx context.Context, c Category, userID, activityID int64, u Update) (life.Activity, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return life.Activity{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	a, err := updateActivity(ctx, tx, c, userID, activityID, u)
	if err != nil {
		return life.Activity{}, err
	}
	if err := tx.Commit(); err != nil {
		return life.Activity{}, fmt.Errorf("commit update: %w", err)
	}
	return a, nil
}

func updateActivity(ctx context.Context, q queryExecutor, c Category, userID, activityID int64, u Update) (life.Activity, error) {
	a, err := scanActivity(q.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ? AND user_id = ? AND category = ?`,
		activityID, userID, string(c),
	))
	if err == sql.ErrNoRows {
		return life.Activity{}, errors.NewNotFoundError("activity", strconv.FormatInt(activityID, 10))
	}
	if err != nil {
		return life.Activity{}, fmt.Errorf("get activity: %w", err)
	}

	if u.HoursPerWeek != nil {
		a.HoursPerWeek = *u.HoursPerWeek
	}
	if u.IsActive != nil {
		a.IsActive = *u.IsActive
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE activities SET hours_per_week = ?, is_active = ? WHERE id = ?`,
		a.HoursPerWeek, a.IsActive, a.ID,
	); err != nil {
		return life.Activity{}, fmt.Errorf("update activity: %w", err)
	}
	return a, nil
}

func (s *SQLite) ListActivities(ctx context.Context, c Category, userID int64, activeOnly bool) ([]life.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE user_id = ? AND category = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, userID, string(c))
	if err != nil {
		return nil, fmt.Errorf("list %s activities: %w", c, err)
	}
	defer func() { _ = rows.Close() }()

	out := []life.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
