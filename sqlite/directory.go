package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/ecolocator"
)

// DirectoryService stores directory entries in SQLite.
type DirectoryService struct {
	db *DB
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(db *DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// LoadEntries returns all entries in declaration order with their points
// in declaration order.
func (s *DirectoryService) LoadEntries(ctx context.Context) ([]ecolocator.DirectoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.city, e.zone, p.name, p.address, p.details, p.phone
		FROM directory_entries e
		JOIN drop_off_points p ON p.city = e.city
		ORDER BY e.position, p.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ecolocator.DirectoryEntry
	for rows.Next() {
		var city, zone string
		var p ecolocator.DropOffPoint
		if err := rows.Scan(&city, &zone, &p.Name, &p.Address, &p.Details, &p.Phone); err != nil {
			return nil, err
		}
		if n := len(entries); n == 0 || entries[n-1].City != city {
			entries = append(entries, ecolocator.DirectoryEntry{City: city, Zone: zone})
		}
		last := &entries[len(entries)-1]
		last.Points = append(last.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ecolocator.Errorf(ecolocator.ENOTFOUND, "directory database has no entries")
	}
	return entries, nil
}

// ReplaceEntries validates entries and rewrites the stored directory in a
// single transaction.
func (s *DirectoryService) ReplaceEntries(ctx context.Context, entries []ecolocator.DirectoryEntry) error {
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return err
		}
		if seen[entries[i].City] {
			return ecolocator.Errorf(ecolocator.EINVALID, "duplicate directory entry %q", entries[i].City)
		}
		seen[entries[i].City] = true
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Points go with their entries through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM directory_entries`); err != nil {
		return err
	}

	for i, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO directory_entries (city, zone, position) VALUES (?, ?, ?)
		`, e.City, e.Zone, i); err != nil {
			return err
		}
		for j, p := range e.Points {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO drop_off_points (city, position, name, address, details, phone)
				VALUES (?, ?, ?, ?, ?, ?)
			`, e.City, j, p.Name, p.Address, p.Details, p.Phone); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
