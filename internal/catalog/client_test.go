package catalog

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// failingStore returns err from every call.
type failingStore struct{ err error }

func (s failingStore) Get(string) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Put(string, []byte) error         { return s.err }

func newFallbackClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(NewMemoryStore(), zerolog.New(io.Discard))
	require.NoError(t, err)
	return c
}

func ids(records []ModelRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, m := range records {
		out = append(out, m.ID)
	}
	return out
}

func TestNewClient_EmbeddedFallback(t *testing.T) {
	store := NewMemoryStore()
	c, err := NewClient(store, zerolog.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, SourceEmbedded, c.Source())
	assert.Len(t, c.All(), 8)
	assert.Len(t, c.Records(), 7, "inactive records are hidden")

	seeded, found, err := store.Get(CatalogKey)
	require.NoError(t, err)
	require.True(t, found, "fallback catalog is written back to the store")
	assert.Equal(t, fallbackCatalogJSON, seeded)

	again, err := NewClient(store, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, SourceStore, again.Source())
}

func TestNewClient_StoreErrors(t *testing.T) {
	_, err := NewClient(failingStore{err: errors.New("disk gone")}, zerolog.New(io.Discard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")

	store := NewMemoryStore()
	require.NoError(t, store.Put(CatalogKey, []byte(`{"not":"a list"}`)))
	_, err = NewClient(store, zerolog.New(io.Discard))
	assert.Error(t, err)
}

// TestNewClient_MalformedRecords verifies bad data never takes the catalog
// down: undecodable records are skipped, invalid prices are kept and logged.
func TestNewClient_MalformedRecords(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(CatalogKey, []byte(`[
		{"id":1,"name":"ok","status":"active","pricing":{"domestic":{"type":"simple","price":1}}},
		{"id":2,"name":"unknown","status":"active","pricing":{"domestic":{"type":"per-token","price":1}}},
		{"id":3,"name":"negative","status":"active","pricing":{"domestic":{"type":"simple","price":-1}}}
	]`)))

	var logs bytes.Buffer
	c, err := NewClient(store, zerolog.New(&logs))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, ids(c.Records()))
	assert.Contains(t, logs.String(), "skipping undecodable catalog record")
	assert.Contains(t, logs.String(), "malformed price block")
	assert.Contains(t, logs.String(), `"model_id":3`)

	card := NewCard(pricing.DefaultDisplay(), mustGet(t, c, 3), pricing.RegionDomestic)
	assert.False(t, card.PriceAvailable)
}

func mustGet(t *testing.T, c *Client, id int64) ModelRecord {
	t.Helper()
	m, ok := c.Get(id)
	require.True(t, ok, "model %d", id)
	return m
}

func TestClient_Get(t *testing.T) {
	c := newFallbackClient(t)

	tests := []struct {
		name      string
		id        int64
		wantFound bool
		wantName  string
	}{
		{name: "active record", id: 198600000004, wantFound: true, wantName: "rh-ai/Sora 2"},
		{name: "inactive record is still addressable", id: 198600000009, wantFound: true, wantName: "rh-ai/Legacy Diffusion"},
		{name: "unknown id", id: 42, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := c.Get(tt.id)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantName, m.Name)
		})
	}
}

func TestClient_Filter(t *testing.T) {
	c := newFallbackClient(t)

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "no criteria", filter: Filter{}, want: []int64{198600000001, 198600000002, 198600000004, 198600000005, 198600000006, 198600000007, 198600000008}},
		{name: "task type", filter: Filter{TaskType: "Text to Image"}, want: []int64{198600000001, 198600000002}},
		{name: "category includes extra titles", filter: Filter{CategoryTitle: "最近上新"}, want: []int64{198600000001, 198600000002, 198600000006}},
		{name: "region", filter: Filter{Region: pricing.RegionInternational}, want: []int64{198600000001, 198600000002, 198600000006, 198600000008}},
		{name: "channel", filter: Filter{ChannelID: "channel_3"}, want: []int64{198600000005}},
		{name: "function category", filter: Filter{FunctionCategory: "音频生成"}, want: []int64{198600000005, 198600000008}},
		{
			name:   "criteria combine",
			filter: Filter{ModelType: ModelTypeThirdParty, TaskType: "Text to Video"},
			want:   []int64{198600000004},
		},
		{
			name:   "search combines with other criteria",
			filter: Filter{Search: "openai", Region: pricing.RegionDomestic},
			want:   []int64{198600000004, 198600000005},
		},
		{name: "nothing matches", filter: Filter{TaskType: "Text to Image", ModelType: ModelTypeThirdParty}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Filter(tt.filter)))
		})
	}
}

func TestClient_Search(t *testing.T) {
	c := newFallbackClient(t)

	assert.Equal(t, []int64{198600000004, 198600000005, 198600000006}, ids(c.Search("OpenAI")))
	assert.Equal(t, []int64{198600000004, 198600000007}, ids(c.Search("VIDEO")))
	assert.Len(t, c.Search("  "), 7, "blank query matches everything")
	assert.Empty(t, c.Search("Legacy"), "inactive records are not searchable")
}

func TestClient_Categories(t *testing.T) {
	c := newFallbackClient(t)

	cats := c.Categories()
	var titles []string
	for _, cat := range cats {
		titles = append(titles, cat.Title)
	}
	assert.Equal(t, []string{"最近上新", "最佳图像编辑模型", "Sora2", "音频模型", "Veo 3.1"}, titles)
	assert.Equal(t, []int64{198600000001, 198600000002, 198600000006}, ids(cats[0].Records))
	assert.Equal(t, []int64{198600000005, 198600000008}, ids(cats[3].Records))
}

func TestClient_TaskTypeCounts(t *testing.T) {
	c := newFallbackClient(t)
	assert.Equal(t, map[string]int{
		"Text to Image":         2,
		"Text to Video":         1,
		"Speech to Text":        1,
		"Large Language Models": 1,
		"Video to Video":        1,
		"Text to Audio":         1,
	}, c.TaskTypeCounts())
}

func TestClient_ExportImport(t *testing.T) {
	src := newFallbackClient(t)
	backup, err := src.Export()
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(backup, &payload))
	assert.Contains(t, payload, "apis")
	assert.Contains(t, payload, "categories")
	assert.Contains(t, payload, "exportTime")

	store := NewMemoryStore()
	require.NoError(t, store.Put(CatalogKey, []byte(`[{"id":7,"name":"only","status":"active","pricing":{}}]`)))
	dst, err := NewClient(store, zerolog.New(io.Discard))
	require.NoError(t, err)
	require.Len(t, dst.Records(), 1)

	require.NoError(t, dst.Import(backup))
	assert.Equal(t, ids(src.All()), ids(dst.All()))
	assert.Equal(t, SourceStore, dst.Source())

	cats, found, err := store.Get(CategoriesKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(cats), "Sora2")
}

func TestClient_ImportRejectsBadPayloads(t *testing.T) {
	c := newFallbackClient(t)

	assert.ErrorIs(t, c.Import([]byte(`{"categories":[]}`)), ErrEmptyImport)
	assert.Error(t, c.Import([]byte(`not json`)))
	assert.Error(t, c.Import([]byte(`{"apis":{"id":1}}`)))
	assert.Len(t, c.Records(), 7, "failed imports leave the catalog untouched")
}

func TestClient_ConcurrentAccess(t *testing.T) {
	c := newFallbackClient(t)
	d := pricing.DefaultDisplay()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Get(198600000001)
			_ = c.Filter(Filter{Search: "image"})
			_ = c.Categories()
			_ = NewCards(d, c.Records(), pricing.RegionDomestic)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		backup, err := c.Export()
		if err == nil {
			_ = c.Import(backup)
		}
	}()
	wg.Wait()
}
