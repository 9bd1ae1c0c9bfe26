package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// slowLookupThreshold is the duration above which a lookup is logged.
const slowLookupThreshold = 50 * time.Millisecond

// Catalog sources reported by Client.Source.
const (
	SourceStore    = "store"
	SourceEmbedded = "embedded"
)

// ErrEmptyImport is returned by Import when the payload carries no records.
var ErrEmptyImport = errors.New("import payload has no apis")

// Client serves catalog records read from a Store. Records are decoded on
// first access and indexed by id.
type Client struct {
	store  Store
	logger zerolog.Logger

	once sync.Once
	err  error

	mu      sync.RWMutex
	source  string
	records []ModelRecord
	byID    map[int64]int
}

// NewClient creates a Client backed by store and loads the catalog. When the
// store holds no catalog, the embedded fallback catalog is used and written
// back to the store.
func NewClient(store Store, logger zerolog.Logger) (*Client, error) {
	c := &Client{
		store:  store,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

// init loads the catalog exactly once.
func (c *Client) init() error {
	c.once.Do(func() {
		data, found, err := c.store.Get(CatalogKey)
		if err != nil {
			c.err = fmt.Errorf("failed to read catalog: %w", err)
			return
		}
		source := SourceStore
		if !found {
			data = fallbackCatalogJSON
			source = SourceEmbedded
			if err := c.store.Put(CatalogKey, data); err != nil {
				c.logger.Warn().Err(err).Msg("failed to seed store with fallback catalog")
			}
		}

		records, err := c.decodeRecords(data)
		if err != nil {
			c.err = fmt.Errorf("failed to parse catalog: %w", err)
			return
		}
		c.replace(records, source)
		c.logger.Debug().
			Str("source", source).
			Int("records", len(records)).
			Msg("catalog loaded")
	})
	return c.err
}

// decodeRecords decodes a catalog blob record by record. A record whose
// pricing cannot be decoded is skipped; a record whose pricing decodes but
// fails validation is kept and logged.
func (c *Client) decodeRecords(data []byte) ([]ModelRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	records := make([]ModelRecord, 0, len(raw))
	for i, r := range raw {
		var m ModelRecord
		if err := json.Unmarshal(r, &m); err != nil {
			c.logger.Warn().
				Int("index", i).
				Err(err).
				Msg("skipping undecodable catalog record")
			continue
		}
		if err := pricing.ValidatePricing(m.Pricing); err != nil {
			c.logger.Warn().
				Int64("model_id", m.ID).
				Str("model_name", m.Name).
				Err(err).
				Msg("malformed price block")
		}
		records = append(records, m)
	}
	return records, nil
}

func (c *Client) replace(records []ModelRecord, source string) {
	byID := make(map[int64]int, len(records))
	for i, m := range records {
		if _, dup := byID[m.ID]; dup {
			c.logger.Warn().Int64("model_id", m.ID).Msg("duplicate model id, keeping first")
			continue
		}
		byID[m.ID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.byID = byID
	c.source = source
}

// warnIfSlow logs lookups that exceed slowLookupThreshold.
func (c *Client) warnIfSlow(start time.Time, op string, fields map[string]any) {
	elapsed := time.Since(start)
	if elapsed > slowLookupThreshold {
		c.logger.Warn().
			Str("operation", op).
			Fields(fields).
			Dur("elapsed", elapsed).
			Msg("catalog lookup took too long")
	}
}

// Source reports where the loaded catalog came from.
func (c *Client) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// Get returns the record with the given id, active or not.
// Returns (record, true) if found, (zero, false) if not found.
func (c *Client) Get(id int64) (ModelRecord, bool) {
	defer c.warnIfSlow(time.Now(), "get", map[string]any{"model_id": id})

	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return ModelRecord{}, false
	}
	return c.records[i], true
}

// All returns every loaded record, including inactive ones.
func (c *Client) All() []ModelRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ModelRecord(nil), c.records...)
}

// Records returns the active records in catalog order.
func (c *Client) Records() []ModelRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ModelRecord, 0, len(c.records))
	for _, m := range c.records {
		if m.Active() {
			out = append(out, m)
		}
	}
	return out
}

// Filter returns the active records matching every set criterion of f.
func (c *Client) Filter(f Filter) []ModelRecord {
	defer c.warnIfSlow(time.Now(), "filter", map[string]any{"search": f.Search})

	var out []ModelRecord
	for _, m := range c.Records() {
		if f.Matches(&m) {
			out = append(out, m)
		}
	}
	return out
}

// Search returns the active records whose text fields contain query,
// ignoring case.
func (c *Client) Search(query string) []ModelRecord {
	return c.Filter(Filter{Search: query})
}

// Categories groups the active records by category title, in order of first
// appearance. A record appears under its primary title and under every extra
// title it lists.
func (c *Client) Categories() []Category {
	return GroupByCategory(c.Records())
}

// TaskTypeCounts returns the number of active records per task type.
func (c *Client) TaskTypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, m := range c.Records() {
		counts[m.TaskType]++
	}
	return counts
}

// exportPayload is the backup format written by Export.
type exportPayload struct {
	APIs       json.RawMessage `json:"apis"`
	Categories []string        `json:"categories"`
	ExportTime time.Time       `json:"exportTime"`
}

// Export returns a backup of the stored catalog blob together with the
// category titles and the export time.
func (c *Client) Export() ([]byte, error) {
	data, found, err := c.store.Get(CatalogKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if !found {
		data = fallbackCatalogJSON
	}

	var titles []string
	for _, cat := range c.Categories() {
		titles = append(titles, cat.Title)
	}
	return json.MarshalIndent(exportPayload{
		APIs:       data,
		Categories: titles,
		ExportTime: time.Now().UTC(),
	}, "", "  ")
}

// Import restores a backup produced by Export. The catalog is replaced only
// when the payload decodes.
func (c *Client) Import(data []byte) error {
	var p exportPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse import: %w", err)
	}
	if len(p.APIs) == 0 || string(p.APIs) == "null" {
		return ErrEmptyImport
	}
	records, err := c.decodeRecords(p.APIs)
	if err != nil {
		return fmt.Errorf("failed to parse imported apis: %w", err)
	}

	if err := c.store.Put(CatalogKey, p.APIs); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}
	if p.Categories != nil {
		cats, err := json.Marshal(p.Categories)
		if err != nil {
			return err
		}
		if err := c.store.Put(CategoriesKey, cats); err != nil {
			return fmt.Errorf("failed to store categories: %w", err)
		}
	}
	c.replace(records, SourceStore)
	c.logger.Info().Int("records", len(records)).Msg("catalog imported")
	return nil
}
