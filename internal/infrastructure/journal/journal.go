// Package journal хранит ленту повествования в SQLite.
//
// Запись асинхронная: Publish только кладёт пакет в очередь, вставку делает
// отдельная горутина, так что игровой цикл не ждёт диска.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"maw-server/internal/domain"
	"maw-server/pkg/logger"
)

// ErrClosed - журнал уже закрыт
var ErrClosed = errors.New("journal closed")

const queueSize = 1024

// Journal - SQLite-журнал. Реализует engine.Sink.
type Journal struct {
	db *sql.DB

	ch chan []domain.LogEntry
	wg sync.WaitGroup

	mu     sync.RWMutex // закрытие канала против Publish
	closed bool
}

// Open открывает (или создаёт) журнал по пути path
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	j := &Journal{
		db: db,
		ch: make(chan []domain.LogEntry, queueSize),
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.loop()
	}()
	return j, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS narration (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			type TEXT NOT NULL,
			text TEXT NOT NULL,
			private INTEGER NOT NULL DEFAULT 0,
			recipient INTEGER NOT NULL DEFAULT 0,
			ts INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS narration_tick ON narration(tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("journal schema: %w", err)
		}
	}
	return nil
}

// Publish ставит пакет в очередь на запись. Не блокирует: при переполнении пакет теряется.
func (j *Journal) Publish(_ context.Context, entries []domain.LogEntry) {
	if len(entries) == 0 {
		return
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}
	select {
	case j.ch <- entries:
	default:
		logger.For("journal").WithField("entries", len(entries)).Warn("Journal queue full, entries dropped.")
	}
}

func (j *Journal) loop() {
	for batch := range j.ch {
		if err := j.insert(batch); err != nil {
			logger.For("journal").WithError(err).Error("Failed to write narration.")
		}
	}
}

func (j *Journal) insert(batch []domain.LogEntry) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO narration (entry_id, tick, type, text, private, recipient, ts) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range batch {
		private := 0
		if e.Private {
			private = 1
		}
		if _, err := stmt.Exec(e.ID, e.Tick, string(e.Type), e.Text, private, int64(e.Recipient), e.Timestamp); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Query - фильтр для Recent
type Query struct {
	Limit int
	// Player != 0: только записи, видимые этому игроку. 0 - все записи.
	Player domain.PlayerID
}

// Recent возвращает последние записи в хронологическом порядке
func (j *Journal) Recent(ctx context.Context, q Query) ([]domain.LogEntry, error) {
	j.mu.RLock()
	closed := j.closed
	j.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}

	query := `SELECT entry_id, tick, type, text, private, recipient, ts FROM narration`
	args := []any{}
	if q.Player != 0 {
		query += ` WHERE private = 0 OR recipient = ?`
		args = append(args, int64(q.Player))
	}
	query += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, q.Limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LogEntry
	for rows.Next() {
		var (
			e         domain.LogEntry
			typ       string
			private   int
			recipient int64
		)
		if err := rows.Scan(&e.ID, &e.Tick, &typ, &e.Text, &private, &recipient, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Type = domain.LogType(typ)
		e.Private = private != 0
		e.Recipient = domain.PlayerID(recipient)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Из базы пришли от новых к старым
	for i, k := 0, len(out)-1; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	return out, nil
}

// Close дописывает очередь и закрывает базу
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	close(j.ch)
	j.mu.Unlock()

	j.wg.Wait()
	return j.db.Close()
}
