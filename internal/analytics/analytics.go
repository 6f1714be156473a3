// Package analytics records query traffic in a SQLite database and produces
// usage summaries. The driver is modernc.org/sqlite, so the store works
// without cgo.
package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS query_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	query TEXT NOT NULL,
	query_type TEXT,
	components TEXT,
	response_time REAL,
	num_results INTEGER,
	avg_similarity REAL,
	user_feedback INTEGER,
	session_id TEXT
);
CREATE TABLE IF NOT EXISTS component_stats (
	component TEXT PRIMARY KEY,
	query_count INTEGER NOT NULL DEFAULT 0,
	avg_similarity REAL NOT NULL DEFAULT 0,
	last_queried TEXT
);
CREATE TABLE IF NOT EXISTS daily_stats (
	date TEXT PRIMARY KEY,
	total_queries INTEGER NOT NULL DEFAULT 0,
	avg_response_time REAL NOT NULL DEFAULT 0,
	unique_sessions INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_query_logs_timestamp ON query_logs (timestamp);
CREATE INDEX IF NOT EXISTS idx_query_logs_query ON query_logs (query);
`

// Store persists query logs and aggregates.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the analytics database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// modernc sqlite serializes writes itself; a single connection avoids
	// SQLITE_BUSY churn under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init analytics schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// QueryLog is one recorded query event.
type QueryLog struct {
	Query         string
	QueryType     string
	Components    []string
	ResponseTime  float64
	NumResults    int
	AvgSimilarity float64
	SessionID     string
}

// LogQuery records one query and updates the per-component and per-day
// rolling aggregates in the same transaction.
func (s *Store) LogQuery(ctx context.Context, entry QueryLog) error {
	now := time.Now().UTC()
	components, err := json.Marshal(entry.Components)
	if err != nil {
		return fmt.Errorf("encode components: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin analytics tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO query_logs
			(timestamp, query, query_type, components, response_time, num_results, avg_similarity, session_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		now.Format(time.RFC3339), entry.Query, entry.QueryType, string(components),
		entry.ResponseTime, entry.NumResults, entry.AvgSimilarity, entry.SessionID,
	)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}

	for _, component := range entry.Components {
		if err := s.bumpComponent(ctx, tx, component, entry.AvgSimilarity, now); err != nil {
			return err
		}
	}
	if err := s.bumpDaily(ctx, tx, entry, now); err != nil {
		return err
	}
	return tx.Commit()
}

// bumpComponent updates one component's query count and rolling average
// similarity.
func (s *Store) bumpComponent(ctx context.Context, tx *sql.Tx, component string, similarity float64, now time.Time) error {
	var count int
	var avg float64
	err := tx.QueryRowContext(ctx,
		`SELECT query_count, avg_similarity FROM component_stats WHERE component = ?`,
		component).Scan(&count, &avg)
	switch {
	case err == sql.ErrNoRows:
		count, avg = 0, 0
	case err != nil:
		return fmt.Errorf("read component stats: %w", err)
	}

	newAvg := (avg*float64(count) + similarity) / float64(count+1)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO component_stats (component, query_count, avg_similarity, last_queried)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(component) DO UPDATE SET
			query_count = excluded.query_count,
			avg_similarity = excluded.avg_similarity,
			last_queried = excluded.last_queried`,
		component, count+1, newAvg, now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("update component stats: %w", err)
	}
	return nil
}

// bumpDaily updates the current day's totals and rolling average response
// time. Unique sessions are recounted from the raw logs.
func (s *Store) bumpDaily(ctx context.Context, tx *sql.Tx, entry QueryLog, now time.Time) error {
	day := now.Format("2006-01-02")

	var total int
	var avgRT float64
	err := tx.QueryRowContext(ctx,
		`SELECT total_queries, avg_response_time FROM daily_stats WHERE date = ?`,
		day).Scan(&total, &avgRT)
	switch {
	case err == sql.ErrNoRows:
		total, avgRT = 0, 0
	case err != nil:
		return fmt.Errorf("read daily stats: %w", err)
	}

	var sessions int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT session_id) FROM query_logs
		WHERE timestamp >= ? AND session_id != ''`,
		day+"T00:00:00Z").Scan(&sessions)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}

	newAvg := (avgRT*float64(total) + entry.ResponseTime) / float64(total+1)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_stats (date, total_queries, avg_response_time, unique_sessions)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_queries = excluded.total_queries,
			avg_response_time = excluded.avg_response_time,
			unique_sessions = excluded.unique_sessions`,
		day, total+1, newAvg, sessions,
	)
	if err != nil {
		return fmt.Errorf("update daily stats: %w", err)
	}
	return nil
}

// ComponentCount is one entry in a summary's component ranking.
type ComponentCount struct {
	Component string `json:"component"`
	Count     int    `json:"count"`
}

// Summary aggregates traffic over a trailing window of days.
type Summary struct {
	PeriodDays      int              `json:"period_days"`
	TotalQueries    int              `json:"total_queries"`
	AvgResponseTime float64          `json:"avg_response_time"`
	AvgSimilarity   float64          `json:"avg_similarity"`
	AvgResults      float64          `json:"avg_results"`
	TopComponents   []ComponentCount `json:"top_components"`
	QueryTypes      map[string]int   `json:"query_types"`
}

// Summary reports totals, averages, the top queried components and the
// query-type distribution for the trailing window.
func (s *Store) Summary(ctx context.Context, days int) (*Summary, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	out := &Summary{PeriodDays: days, QueryTypes: map[string]int{}}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(response_time), 0),
		       COALESCE(AVG(avg_similarity), 0),
		       COALESCE(AVG(num_results), 0)
		FROM query_logs WHERE timestamp >= ?`, since).
		Scan(&out.TotalQueries, &out.AvgResponseTime, &out.AvgSimilarity, &out.AvgResults)
	if err != nil {
		return nil, fmt.Errorf("summary totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT query_type, COUNT(*) FROM query_logs
		WHERE timestamp >= ? AND query_type != ''
		GROUP BY query_type`, since)
	if err != nil {
		return nil, fmt.Errorf("summary query types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var qt string
		var n int
		if err := rows.Scan(&qt, &n); err != nil {
			return nil, fmt.Errorf("scan query type: %w", err)
		}
		out.QueryTypes[qt] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary query types: %w", err)
	}

	top, err := s.topComponents(ctx, since, 10)
	if err != nil {
		return nil, err
	}
	out.TopComponents = top
	return out, nil
}

// topComponents recounts component mentions from the raw logs so the window
// matches the summary's, rather than using the all-time component_stats.
func (s *Store) topComponents(ctx context.Context, since string, limit int) ([]ComponentCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT components FROM query_logs
		WHERE timestamp >= ? AND components != '' AND components != 'null'`, since)
	if err != nil {
		return nil, fmt.Errorf("summary components: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan components: %w", err)
		}
		var components []string
		if err := json.Unmarshal([]byte(raw), &components); err != nil {
			continue
		}
		for _, c := range components {
			counts[c]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary components: %w", err)
	}

	ranked := make([]ComponentCount, 0, len(counts))
	for c, n := range counts {
		ranked = append(ranked, ComponentCount{Component: c, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Component < ranked[j].Component
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// TrendingQuery is one popular query over the trailing week.
type TrendingQuery struct {
	Query         string  `json:"query"`
	Count         int     `json:"count"`
	AvgSimilarity float64 `json:"avg_similarity"`
}

// Trending returns the most frequent queries of the last 7 days, folded
// case-insensitively.
func (s *Store) Trending(ctx context.Context, limit int) ([]TrendingQuery, error) {
	if limit <= 0 {
		limit = 10
	}
	since := time.Now().UTC().AddDate(0, 0, -7).Format(time.RFC3339)

	rows, err := s.db.QueryContext(ctx, `
		SELECT LOWER(query), COUNT(*), COALESCE(AVG(avg_similarity), 0)
		FROM query_logs WHERE timestamp >= ?
		GROUP BY LOWER(query)
		ORDER BY COUNT(*) DESC, LOWER(query) ASC
		LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("trending queries: %w", err)
	}
	defer rows.Close()

	var out []TrendingQuery
	for rows.Next() {
		var t TrendingQuery
		if err := rows.Scan(&t.Query, &t.Count, &t.AvgSimilarity); err != nil {
			return nil, fmt.Errorf("scan trending query: %w", err)
		}
		t.Query = strings.TrimSpace(t.Query)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trending queries: %w", err)
	}
	return out, nil
}
