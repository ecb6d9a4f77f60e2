package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/Akbari06/WellWorld/internal/model"
)

// Store manages all data persistence via DuckDB.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "wellworld.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS messages_seq",
	}
	for _, seq := range seqs {
		if _, err := s.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY DEFAULT nextval('messages_seq'),
			session TEXT NOT NULL,
			role TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			country TEXT PRIMARY KEY,
			locations TEXT NOT NULL,
			model TEXT NOT NULL,
			converted_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// AppendMessage persists one chat message, assigning its ID and timestamp.
func (s *Store) AppendMessage(m *model.ChatMessage) error {
	if m.CreatedAt == "" {
		m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	row := s.DB.QueryRow(
		`INSERT INTO messages (session, role, body, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		m.Session, m.Role, m.Body, m.CreatedAt,
	)
	if err := row.Scan(&m.ID); err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// QueryMessages returns messages matching the filter, oldest first.
func (s *Store) QueryMessages(f model.MessageFilter) ([]model.ChatMessage, error) {
	query := `SELECT id, session, role, body, created_at FROM messages WHERE 1=1`
	var args []any

	if f.Session != "" {
		query += ` AND session = ?`
		args = append(args, f.Session)
	}
	if f.Role != "" {
		query += ` AND role = ?`
		args = append(args, f.Role)
	}
	if f.Since != "" {
		query += ` AND created_at >= ?`
		args = append(args, f.Since)
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.Session, &m.Role, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// WriteConversion caches a completed conversion, replacing any previous run
// for the same country.
func (s *Store) WriteConversion(c *model.Conversion) error {
	locs, err := json.Marshal(c.Locations)
	if err != nil {
		return fmt.Errorf("marshaling locations: %w", err)
	}

	_, err = s.DB.Exec(
		`INSERT OR REPLACE INTO conversions (country, locations, model, converted_at) VALUES (?, ?, ?, ?)`,
		c.Country, string(locs), c.Model, c.ConvertedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	return nil
}

// ReadConversion returns the cached conversion for a country, or nil if none
// exists.
func (s *Store) ReadConversion(country string) (*model.Conversion, error) {
	row := s.DB.QueryRow(
		`SELECT country, locations, model, converted_at FROM conversions WHERE country = ?`,
		country,
	)

	var c model.Conversion
	var locs string
	if err := row.Scan(&c.Country, &locs, &c.Model, &c.ConvertedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reading conversion: %w", err)
	}

	if err := json.Unmarshal([]byte(locs), &c.Locations); err != nil {
		return nil, fmt.Errorf("unmarshaling locations: %w", err)
	}
	return &c, nil
}

// MessageCount returns the total number of stored chat messages.
func (s *Store) MessageCount() int {
	var n int
	_ = s.DB.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n)
	return n
}

// ConversionCount returns the number of cached conversions.
func (s *Store) ConversionCount() int {
	var n int
	_ = s.DB.QueryRow(`SELECT COUNT(*) FROM conversions`).Scan(&n)
	return n
}

// SessionCount returns the number of distinct chat sessions.
func (s *Store) SessionCount() int {
	var n int
	_ = s.DB.QueryRow(`SELECT COUNT(DISTINCT session) FROM messages`).Scan(&n)
	return n
}
