package bootstrap

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

type CollectionReport struct {
	Name           string   `json:"name"`
	Exists         bool     `json:"exists"`
	Documents      int64    `json:"documents"`
	Indexes        []string `json:"indexes,omitempty"`
	MissingIndexes []string `json:"missing_indexes,omitempty"`
	// NonUniqueIndexes are declared unique but exist without the constraint.
	NonUniqueIndexes []string `json:"non_unique_indexes,omitempty"`
}

// Report describes how far the database matches the declared layout.
type Report struct {
	Database    string             `json:"database"`
	Ready       bool               `json:"ready"`
	Collections []CollectionReport `json:"collections"`
	CheckedAt   time.Time          `json:"checked_at"`
}

// Verify inspects the database read-only and reports missing collections,
// missing indexes and unique indexes that lost their constraint.
func Verify(ctx context.Context, store Store) (*Report, error) {
	names, err := store.CollectionNames(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Database:  store.Name(),
		Ready:     true,
		CheckedAt: time.Now().UTC(),
	}

	for _, spec := range Collections() {
		cr := CollectionReport{Name: spec.Name, Exists: slices.Contains(names, spec.Name)}

		if !cr.Exists {
			cr.MissingIndexes = spec.IndexNames()
			report.Ready = false
			report.Collections = append(report.Collections, cr)
			continue
		}

		if cr.Documents, err = store.CountDocuments(ctx, spec.Name); err != nil {
			return nil, err
		}
		existing, err := store.Indexes(ctx, spec.Name)
		if err != nil {
			return nil, err
		}
		for _, idx := range existing {
			cr.Indexes = append(cr.Indexes, idx.Name)
		}
		for _, model := range spec.Indexes {
			name := IndexName(model)
			i := slices.IndexFunc(existing, func(idx IndexInfo) bool { return idx.Name == name })
			switch {
			case i < 0:
				cr.MissingIndexes = append(cr.MissingIndexes, name)
			case IsUnique(model) && !existing[i].Unique:
				cr.NonUniqueIndexes = append(cr.NonUniqueIndexes, name)
			}
		}
		if len(cr.MissingIndexes) > 0 || len(cr.NonUniqueIndexes) > 0 {
			report.Ready = false
		}
		report.Collections = append(report.Collections, cr)
	}

	return report, nil
}

// Collection returns the report entry for name.
func (r *Report) Collection(name string) (CollectionReport, bool) {
	for _, cr := range r.Collections {
		if cr.Name == name {
			return cr, true
		}
	}
	return CollectionReport{}, false
}

// Err returns nil when the database is ready, otherwise ErrNotReady listing what is wrong.
func (r *Report) Err() error {
	if r.Ready {
		return nil
	}
	var missing, nonUnique []string
	for _, cr := range r.Collections {
		if !cr.Exists {
			missing = append(missing, "collection "+cr.Name)
			continue
		}
		for _, idx := range cr.MissingIndexes {
			missing = append(missing, fmt.Sprintf("index %s.%s", cr.Name, idx))
		}
		for _, idx := range cr.NonUniqueIndexes {
			nonUnique = append(nonUnique, fmt.Sprintf("index %s.%s", cr.Name, idx))
		}
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	}
	if len(nonUnique) > 0 {
		problems = append(problems, "not unique "+strings.Join(nonUnique, ", "))
	}
	return fmt.Errorf("%w: %s", ErrNotReady, strings.Join(problems, "; "))
}
