package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/varviz3d/varviz3d/internal/significance"
	"github.com/varviz3d/varviz3d/internal/variant"
)

// WriteFetchResult caches the outcome of a variant fetch for an accession,
// replacing any previous entry. Records are batch-inserted with the
// Appender API. Degraded results (source "error") are not cached so the
// next request retries the sources.
func (s *Store) WriteFetchResult(accession string, res *variant.FetchResult) error {
	if res == nil || res.Source == variant.SourceError {
		return nil
	}

	if err := s.DeleteFetchResult(accession); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		`INSERT INTO fetches (accession, seq_length, source) VALUES (?, ?, ?)`,
		accession, res.Length, res.Source,
	); err != nil {
		return fmt.Errorf("insert fetch row: %w", err)
	}
	if len(res.Items) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "variant_records")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, v := range res.Items {
		if err := appender.AppendRow(
			accession, int64(v.Position), v.WildType, v.Alternative,
			string(v.Class), string(v.Provenance),
		); err != nil {
			return fmt.Errorf("append variant record: %w", err)
		}
	}

	return appender.Flush()
}

// LookupFetchResult returns the cached fetch result for an accession, or
// nil when nothing is cached.
func (s *Store) LookupFetchResult(accession string) (*variant.FetchResult, error) {
	res := &variant.FetchResult{}
	err := s.db.QueryRow(
		`SELECT seq_length, source FROM fetches WHERE accession = ?`, accession,
	).Scan(&res.Length, &res.Source)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query fetch row: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT pos, wild_type, alternative, class, provenance
		 FROM variant_records WHERE accession = ? ORDER BY pos`, accession)
	if err != nil {
		return nil, fmt.Errorf("query variant records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos                    int64
			wild, alt, class, prov string
		)
		if err := rows.Scan(&pos, &wild, &alt, &class, &prov); err != nil {
			return nil, fmt.Errorf("scan variant record: %w", err)
		}
		res.Items = append(res.Items, variant.ClassifiedVariant{
			Position:    int(pos),
			WildType:    wild,
			Alternative: alt,
			Class:       significance.Coerce(significance.Class(class)),
			Provenance:  variant.Provenance(prov),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant records: %w", err)
	}
	return res, nil
}

// DeleteFetchResult removes the cached entry for one accession.
func (s *Store) DeleteFetchResult(accession string) error {
	if _, err := s.db.Exec(`DELETE FROM variant_records WHERE accession = ?`, accession); err != nil {
		return fmt.Errorf("delete variant records: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM fetches WHERE accession = ?`, accession); err != nil {
		return fmt.Errorf("delete fetch row: %w", err)
	}
	return nil
}

// Clear removes every cached fetch result.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM variant_records`); err != nil {
		return fmt.Errorf("clear variant records: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM fetches`); err != nil {
		return fmt.Errorf("clear fetches: %w", err)
	}
	return nil
}
