package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores each game as a JSON blob in the entries table. Row ids keep
// the catalog order.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the entries
// table exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	createEntries := `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		data TEXT
	);
	`
	if _, err := db.Exec(createEntries); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring entries table exists: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load returns every stored game ordered by row id. A row whose data does not
// decode fails the whole load.
func (s *SQLite) Load() ([]Game, error) {
	rows, err := s.db.Query("SELECT id, data FROM entries ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []Game{}
	for rows.Next() {
		var id int64
		var dataStr string
		if err := rows.Scan(&id, &dataStr); err != nil {
			return nil, err
		}
		var g Game
		if err := json.Unmarshal([]byte(dataStr), &g); err != nil {
			return nil, fmt.Errorf("decoding entry %d: %w", id, err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// Save replaces all rows in one transaction.
func (s *SQLite) Save(games []Game) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO entries (data) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, g := range games {
		js, err := json.Marshal(g)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(string(js)); err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
