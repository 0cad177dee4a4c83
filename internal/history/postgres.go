package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore keeps the history in a keyword_history table. Same
// load-everything / save-everything contract as FileStore; at thirty days of
// daily keyword counts the table stays tiny, so Save just rewrites it inside
// one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS keyword_history (
			day     DATE    NOT NULL,
			keyword TEXT    NOT NULL,
			count   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (day, keyword)
		)`)
	if err != nil {
		return fmt.Errorf("init keyword_history schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load() (History, error) {
	rows, err := s.db.Query(`SELECT day, keyword, count FROM keyword_history`)
	if err != nil {
		return History{}, fmt.Errorf("query keyword_history: %w", err)
	}
	defer rows.Close()

	h := History{Daily: make(map[string]map[string]int)}
	for rows.Next() {
		var day time.Time
		var keyword string
		var count int
		if err := rows.Scan(&day, &keyword, &count); err != nil {
			return History{}, fmt.Errorf("scan keyword_history row: %w", err)
		}
		key := day.Format(dateLayout)
		if h.Daily[key] == nil {
			h.Daily[key] = make(map[string]int)
		}
		h.Daily[key][keyword] = count
	}
	if err := rows.Err(); err != nil {
		return History{}, fmt.Errorf("read keyword_history rows: %w", err)
	}
	return h, nil
}

func (s *PostgresStore) Save(h History) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM keyword_history`); err != nil {
		return fmt.Errorf("clear keyword_history: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO keyword_history (day, keyword, count) VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	for day, counts := range h.Daily {
		for keyword, count := range counts {
			if _, err := stmt.Exec(day, keyword, count); err != nil {
				return fmt.Errorf("insert keyword_history row: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history save: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
