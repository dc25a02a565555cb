package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	postModel "zkbugs/internal/domain/post/model"
	postService "zkbugs/internal/domain/post/service"
	"zkbugs/pkg/cache"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID = "0b6f3a2e-6a4c-4a8e-9b1d-2f3c4d5e6f70"

// memoryStore 按标题与 slug 去重，模拟数据库唯一索引
type memoryStore struct {
	posts []postModel.Post
	fail  error
}

func (s *memoryStore) Create(ctx context.Context, post *postModel.Post) error {
	if s.fail != nil {
		return s.fail
	}
	for _, p := range s.posts {
		if p.Title == post.Title {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_posts_title"}
		}
		if p.Slug == post.Slug {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_posts_slug"}
		}
	}
	s.posts = append(s.posts, *post)
	return nil
}

func (s *memoryStore) titles() []string {
	out := make([]string, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Title)
	}
	return out
}

func mustParse(t *testing.T, data string) []json.RawMessage {
	t.Helper()
	records, err := ParseRecords([]byte(data))
	require.NoError(t, err)
	return records
}

func newImporter(store PostStore) *Importer {
	im := NewImporter(store, cache.NewMemoryCache())
	im.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	return im
}

func TestImportRendersContentBlocks(t *testing.T) {
	store := &memoryStore{}
	records := mustParse(t, `[{
		"title": "Unchecked limb in verifier",
		"content": [
			{"type": "text", "text": "A & B"},
			{"type": "code", "language": "js", "code": "a<b"}
		]
	}]`)

	result, err := newImporter(store).Import(context.Background(), records, ownerID)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	content := store.posts[0].Content
	assert.Contains(t, content, "A &amp; B")
	assert.Contains(t, content, `<pre><code class="language-js">a&lt;b</code></pre>`)
	assert.Equal(t, "A &amp; B\n\n<pre><code class=\"language-js\">a&lt;b</code></pre>", content)
}

func TestImportIsolatesRecordFailures(t *testing.T) {
	store := &memoryStore{posts: []postModel.Post{{Title: "Existing finding", Slug: "existing-finding"}}}
	records := mustParse(t, `{"posts": [
		{"title": "First finding", "content": "one"},
		{"title": "Existing finding", "content": "two"},
		{"title": "Third finding", "content": "three"}
	]}`)

	result, err := newImporter(store).Import(context.Background(), records, ownerID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Existing finding", result.Errors[0].Title)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "A post with this title already exists", result.Errors[0].Error)
	assert.Equal(t, StatusPartial, result.Status())
	assert.Equal(t, []string{"Existing finding", "First finding", "Third finding"}, store.titles())
	assert.Len(t, result.Data, 2)
}

func TestImportNormalizesFields(t *testing.T) {
	store := &memoryStore{}
	records := mustParse(t, `[{
		"title": "  Hello, World! --foo_bar ",
		"content": "<p>raw</p>",
		"severity": " HIGH ",
		"protocol": "Scroll",
		"protocol_type": "zkevm",
		"source": "Trail of Bits",
		"report_url": "https://example.org/report.pdf",
		"publish_date": "2024-02-29"
	}]`)

	result, err := newImporter(store).Import(context.Background(), records, ownerID)
	require.NoError(t, err)
	require.Equal(t, StatusComplete, result.Status())

	p := store.posts[0]
	assert.Equal(t, "Hello, World! --foo_bar", p.Title)
	assert.Equal(t, "hello-world-foo-bar", p.Slug)
	assert.Equal(t, "<p>raw</p>", p.Content)
	assert.Equal(t, ownerID, p.UserID)
	assert.Equal(t, postModel.SeverityHigh, p.Severity)
	assert.Equal(t, postModel.DifficultyMedium, p.Difficulty)
	assert.Equal(t, postModel.Protocol{Name: "Scroll", Type: postModel.ProtocolZKEVM}, p.Protocol)
	assert.Equal(t, postModel.ReportSource{Name: "Trail of Bits", URL: "https://example.org/report.pdf"}, p.ReportSource)
	assert.Equal(t, "Trail of Bits", p.AuditFirm)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.PublishDate)
	assert.Equal(t, postModel.DefaultCategory, p.Category)
	assert.NotNil(t, p.Tags)
}

func TestImportDefaults(t *testing.T) {
	store := &memoryStore{}
	records := mustParse(t, `[{
		"title": "Nested protocol",
		"content": "x",
		"protocol": {"name": "Polygon", "type": "zk-rollup"},
		"reportSource": {"name": "Spearbit", "url": "https://spearbit.com"}
	}]`)

	_, err := newImporter(store).Import(context.Background(), records, ownerID)
	require.NoError(t, err)

	p := store.posts[0]
	assert.Equal(t, postModel.ProtocolZKRollup, p.Protocol.Type)
	assert.Equal(t, "Spearbit", p.ReportSource.Name)
	assert.Equal(t, postModel.DefaultAuditFirm, p.AuditFirm)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), p.PublishDate)
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	cases := map[string]string{
		"missing title":     `{"content": "x"}`,
		"missing content":   `{"title": "No body"}`,
		"bad severity":      `{"title": "Bad severity", "content": "x", "severity": "catastrophic"}`,
		"bad difficulty":    `{"title": "Bad difficulty", "content": "x", "difficulty": "extreme"}`,
		"bad protocol type": `{"title": "Bad protocol", "content": "x", "protocol_type": "l1"}`,
		"bad date":          `{"title": "Bad date", "content": "x", "date": "yesterday"}`,
		"wrong field type":  `{"title": "Wrong tags", "content": "x", "tags": "zk"}`,
		"numeric content":   `{"title": "Numeric", "content": 42}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := &memoryStore{}
			result, err := newImporter(store).Import(context.Background(), []json.RawMessage{json.RawMessage(raw)}, ownerID)
			require.NoError(t, err)
			assert.Equal(t, 0, result.Imported)
			assert.Len(t, result.Errors, 1)
			assert.Equal(t, StatusFailed, result.Status())
			assert.Empty(t, store.posts)
		})
	}
}

func TestImportStoreFailure(t *testing.T) {
	store := &memoryStore{fail: errors.New("connection refused")}
	records := mustParse(t, `[{"title": "T", "content": "x"}]`)

	result, err := newImporter(store).Import(context.Background(), records, ownerID)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "connection refused")
}

func TestImportInvalidatesPostStats(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()
	require.NoError(t, c.Set(ctx, postService.StatsCacheKey, map[string]int{"total": 1}, time.Minute))

	im := NewImporter(&memoryStore{}, c)
	_, err := im.Import(ctx, mustParse(t, `[{"title": "T", "content": "x"}]`), ownerID)
	require.NoError(t, err)

	var stats map[string]int
	assert.ErrorIs(t, c.Get(ctx, postService.StatsCacheKey, &stats), cache.ErrCacheMiss)
}

func TestImportRequiresOwner(t *testing.T) {
	_, err := newImporter(&memoryStore{}).Import(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestResultStatus(t *testing.T) {
	assert.Equal(t, StatusEmpty, (&Result{}).Status())
	assert.Equal(t, StatusComplete, (&Result{Imported: 3}).Status())
	assert.Equal(t, StatusFailed, (&Result{Errors: []RecordError{{}}}).Status())
	assert.Equal(t, StatusPartial, (&Result{Imported: 1, Errors: []RecordError{{}}}).Status())
}

func TestParseRecords(t *testing.T) {
	_, err := ParseRecords([]byte(`  `))
	assert.Error(t, err)

	_, err = ParseRecords([]byte(`{"items": []}`))
	assert.Error(t, err)

	records, err := ParseRecords([]byte(`{"posts": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRenderBlocks(t *testing.T) {
	html := RenderBlocks([]ContentBlock{
		{Type: "image", Text: "ignored"},
		{Type: "code", Code: "x > 1 && y", Description: "bound <check>"},
	})
	assert.Equal(t, "<pre><code>x &gt; 1 &amp;&amp; y</code></pre>\n<em>bound &lt;check&gt;</em>", html)
}
