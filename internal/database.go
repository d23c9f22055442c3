package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// DatabaseManager persists completed scouting reports so organizers can see
// which players were already checked. Runs disabled when postgres is not
// configured; every method is then a no-op.
type DatabaseManager struct {
	db      *sql.DB
	enabled bool
	logger  *Logger
}

const createReportsTable = `
	CREATE TABLE IF NOT EXISTS scouting_reports (
		id UUID PRIMARY KEY,
		game_name TEXT NOT NULL,
		tag_line TEXT NOT NULL,
		puuid TEXT NOT NULL,
		region TEXT NOT NULL,
		summoner_level INT NOT NULL,
		ranked JSONB NOT NULL DEFAULT '[]',
		status_line TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

func NewDatabaseManager(cfg *Config, logger *Logger) *DatabaseManager {
	if !cfg.DatabaseEnabled || cfg.PostgresUser == "" {
		logger.Info("database_disabled").
			Component("database").
			Operation("connect").
			Log()
		return &DatabaseManager{enabled: false, logger: logger}
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresDb,
		cfg.PostgresSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("database_open_failed").
			Component("database").
			Operation("connect").
			Err(err).
			Log()
		return &DatabaseManager{enabled: false, logger: logger}
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Error("database_ping_failed").
			Component("database").
			Operation("connect").
			Err(err).
			Log()
		return &DatabaseManager{enabled: false, logger: logger}
	}

	if _, err := db.Exec(createReportsTable); err != nil {
		logger.Error("database_migrate_failed").
			Component("database").
			Operation("migrate").
			Err(err).
			Log()
	}

	logger.Info("database_connected").
		Component("database").
		Operation("connect").
		Log()

	return &DatabaseManager{db: db, enabled: true, logger: logger}
}

func (dm *DatabaseManager) SaveReport(ctx context.Context, report *Report) error {
	if !dm.enabled {
		return nil
	}

	ranked, err := json.Marshal(report.Ranked)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scouting_reports
			(id, game_name, tag_line, puuid, region, summoner_level, ranked, status_line, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = dm.db.ExecContext(ctx, query,
		uuid.New().String(),
		report.GameName,
		report.TagLine,
		report.PUUID,
		string(report.Region),
		report.SummonerLevel,
		ranked,
		report.StatusLine,
		report.LookedUpAt,
	)
	if err != nil {
		dm.logger.Error("report_insert_failed").
			Component("database").
			Operation("save_report").
			Err(err).
			Log()
	}
	return err
}

// History returns the most recent reports, newest first.
func (dm *DatabaseManager) History(ctx context.Context, limit int) ([]Report, error) {
	if !dm.enabled {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT game_name, tag_line, puuid, region, summoner_level, ranked, status_line, created_at
		FROM scouting_reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := dm.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		var region string
		var ranked []byte
		if err := rows.Scan(
			&report.GameName,
			&report.TagLine,
			&report.PUUID,
			&region,
			&report.SummonerLevel,
			&ranked,
			&report.StatusLine,
			&report.LookedUpAt,
		); err != nil {
			return nil, err
		}
		report.Region = Region(region)
		if err := json.Unmarshal(ranked, &report.Ranked); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (dm *DatabaseManager) Close() {
	if dm.enabled && dm.db != nil {
		dm.db.Close()
	}
}
