// Package catalog stores known addresses and answers autocomplete and exact
// lookups before a remote geocoder is asked.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/roofsolar/planner/internal/model"
	"github.com/roofsolar/planner/internal/util"
	"github.com/roofsolar/planner/pkg/core"
)

// DefaultLimit caps the number of suggestions.
const DefaultLimit = 5

// ErrNotFound is returned when an address is not in the catalog.
var ErrNotFound = errors.New("address not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Catalog is the address table behind autocomplete.
type Catalog struct {
	db    *gorm.DB
	limit int
	log   zerolog.Logger
}

// New wraps a migrated database. A non-positive limit uses DefaultLimit.
func New(db *gorm.DB, limit int, log zerolog.Logger) *Catalog {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Catalog{db: db, limit: limit, log: log}
}

// Limit is the maximum number of suggestions returned.
func (c *Catalog) Limit() int {
	return c.limit
}

// Seed inserts the builtin addresses that are not stored yet and reports how
// many rows were added.
func (c *Catalog) Seed(ctx context.Context) (int, error) {
	db := c.db.WithContext(ctx)
	added := 0
	for _, loc := range Builtin {
		row := &model.Address{
			Address: loc.Address,
			Lat:     loc.Lat,
			Lng:     loc.Lng,
			Source:  model.SourceBuiltin,
		}
		created, err := row.GetOrInsert(db)
		if err != nil {
			return added, fmt.Errorf("failed to seed %q: %w", loc.Address, err)
		}
		if created {
			added++
		}
	}
	c.log.Info().Int("added", added).Int("builtin", len(Builtin)).Msg("Address catalog seeded")
	return added, nil
}

// Suggest returns up to Limit addresses containing query, ignoring case, in
// insertion order. An empty query returns the first entries.
func (c *Catalog) Suggest(ctx context.Context, query string) ([]core.Location, error) {
	query = strings.TrimSpace(query)

	tx := c.db.WithContext(ctx).Model(&model.Address{})
	if query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		tx = tx.Where(`LOWER(address) LIKE ? ESCAPE '\'`, pattern)
	}

	var rows []model.Address
	if err := tx.Order("id").Limit(c.limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search addresses: %w", err)
	}

	out := make([]core.Location, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Location())
	}
	return out, nil
}

// Lookup returns the entry whose address matches exactly after trimming.
func (c *Catalog) Lookup(ctx context.Context, address string) (core.Location, error) {
	address = util.CleanAddress(address)
	if address == "" {
		return core.Location{}, ErrNotFound
	}

	var row model.Address
	err := c.db.WithContext(ctx).Where("address = ?", address).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Location{}, ErrNotFound
	}
	if err != nil {
		return core.Location{}, fmt.Errorf("failed to look up %q: %w", address, err)
	}
	return row.Location(), nil
}

// Remember stores a resolved location so the next lookup is answered locally.
// Existing entries are left untouched.
func (c *Catalog) Remember(ctx context.Context, loc core.Location, source string, details map[string]any) error {
	row := &model.Address{
		Address: util.CleanAddress(loc.Address),
		Lat:     loc.Lat,
		Lng:     loc.Lng,
		Source:  source,
	}
	if row.Address == "" {
		return ErrNotFound
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode details: %w", err)
		}
		row.Details = datatypes.JSON(raw)
	}

	created, err := row.GetOrInsert(c.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to remember %q: %w", row.Address, err)
	}
	if created {
		c.log.Debug().Str("address", row.Address).Str("source", source).Msg("Address remembered")
	}
	return nil
}
