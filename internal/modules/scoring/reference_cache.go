package scoring

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ReferenceCache persists reference distributions to a msgpack snapshot
// on disk, valid until local-date rollover. It is an optimization only;
// every failure path degrades to a rebuild.
type ReferenceCache struct {
	path string
	log  zerolog.Logger
}

// NewReferenceCache creates a cache writing to the given snapshot path.
func NewReferenceCache(path string, log zerolog.Logger) *ReferenceCache {
	return &ReferenceCache{
		path: path,
		log:  log.With().Str("component", "reference_cache").Logger(),
	}
}

// Load returns the cached references when the snapshot was built today.
// Missing, stale, or unreadable snapshots return nil.
func (c *ReferenceCache) Load(today string) *References {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn().Err(err).Str("path", c.path).Msg("Failed to read reference snapshot")
		}
		return nil
	}

	var refs References
	if err := msgpack.Unmarshal(data, &refs); err != nil {
		c.log.Warn().Err(err).Str("path", c.path).Msg("Reference snapshot is corrupt, rebuilding")
		return nil
	}

	if refs.BuiltDate != today {
		c.log.Debug().
			Str("built_date", refs.BuiltDate).
			Str("today", today).
			Msg("Reference snapshot rolled over")
		return nil
	}

	return &refs
}

// Save writes the snapshot. Failures are logged, not returned.
func (c *ReferenceCache) Save(refs *References) {
	data, err := msgpack.Marshal(refs)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to encode reference snapshot")
		return
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		c.log.Warn().Err(err).Str("path", c.path).Msg("Failed to write reference snapshot")
		return
	}

	c.log.Debug().
		Str("path", c.path).
		Str("built_date", refs.BuiltDate).
		Int("sectors", len(refs.Sectors)).
		Msg("Reference snapshot saved")
}
