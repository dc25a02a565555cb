package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	postModel "zkbugs/internal/domain/post/model"
	postService "zkbugs/internal/domain/post/service"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/cache"
	"zkbugs/pkg/logger"
	"zkbugs/pkg/metrics"
	"zkbugs/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Status 批次导入结果
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusFailed   Status = "failed"
	StatusEmpty    Status = "empty"
)

// PostStore 导入只需要写入能力
type PostStore interface {
	Create(ctx context.Context, post *postModel.Post) error
}

// RecordError 单条记录的失败原因
type RecordError struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// Result 导入结果
type Result struct {
	Imported int              `json:"imported"`
	Errors   []RecordError    `json:"errors"`
	Data     []postModel.Post `json:"data"`
}

// Status 区分全部成功与部分成功
func (r *Result) Status() Status {
	switch {
	case r.Imported == 0 && len(r.Errors) == 0:
		return StatusEmpty
	case len(r.Errors) == 0:
		return StatusComplete
	case r.Imported == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// Importer 批量导入报告，单条失败不影响其余记录
type Importer struct {
	posts PostStore
	cache cache.CacheService
	now   func() time.Time
}

func NewImporter(posts PostStore, c cache.CacheService) *Importer {
	return &Importer{posts: posts, cache: c, now: time.Now}
}

// Import 逐条转换并写入，所有记录归属 ownerID
func (im *Importer) Import(ctx context.Context, records []json.RawMessage, ownerID string) (*Result, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("owner id is required")
	}

	result := &Result{Errors: []RecordError{}, Data: []postModel.Post{}}
	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		post, title, err := im.buildPost(raw, ownerID)
		if err == nil {
			err = im.save(ctx, post)
		}
		if err != nil {
			logger.Log.Warn("import record failed",
				zap.Int("index", i),
				zap.String("title", title),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, RecordError{Index: i, Title: title, Error: err.Error()})
			continue
		}
		result.Imported++
		result.Data = append(result.Data, *post)
	}

	if result.Imported > 0 {
		cache.Forget(ctx, im.cache, postService.StatsCacheKey)
	}
	metrics.GetGlobalCollector().RecordImport(result.Imported, len(result.Errors))
	logger.Log.Info("import finished",
		zap.Int("imported", result.Imported),
		zap.Int("failed", len(result.Errors)),
		zap.String("status", string(result.Status())),
	)
	return result, nil
}

func (im *Importer) buildPost(raw json.RawMessage, ownerID string) (*postModel.Post, string, error) {
	rec, title, err := decodeRecord(raw)
	if err != nil {
		return nil, title, err
	}

	title = strings.TrimSpace(rec.Title)
	if title == "" {
		return nil, rec.Title, errors.New("title is required")
	}
	post, err := im.convert(rec, title, ownerID)
	return post, title, err
}

func (im *Importer) convert(rec *RawRecord, title, ownerID string) (*postModel.Post, error) {
	content, err := RenderContent(rec.Content)
	if err != nil {
		return nil, err
	}
	severity, err := postModel.ParseSeverity(rec.Severity)
	if err != nil {
		return nil, err
	}
	difficulty, err := postModel.ParseDifficulty(rec.Difficulty)
	if err != nil {
		return nil, err
	}
	protocol, err := rec.protocol()
	if err != nil {
		return nil, err
	}
	publishDate, err := rec.publishDate()
	if err != nil {
		return nil, err
	}

	slug := utils.GenerateSlug(title)
	if slug == "" {
		return nil, errors.New("title produces an empty slug")
	}

	post := &postModel.Post{
		UserID:         ownerID,
		Title:          title,
		Slug:           slug,
		Content:        content,
		Image:          strings.TrimSpace(rec.Image),
		Category:       strings.TrimSpace(rec.Category),
		PublishDate:    publishDate,
		ReportSource:   rec.reportSource(),
		AuditFirm:      rec.auditFirm(),
		Protocol:       protocol,
		Source:         strings.TrimSpace(rec.Source),
		Severity:       severity,
		Difficulty:     difficulty,
		Tags:           datatypes.JSONSlice[string](rec.Tags),
		Frameworks:     datatypes.JSONSlice[string](rec.Frameworks),
		ReportedBy:     datatypes.JSONSlice[string](rec.ReportedBy),
		Scope:          datatypes.JSONSlice[postModel.ScopeItem](rec.Scope),
		FindingID:      rec.FindingID,
		TargetFile:     rec.TargetFile,
		Impact:         rec.Impact,
		Recommendation: rec.Recommendation,
	}
	post.ApplyDefaults(im.now())
	return post, nil
}

func (im *Importer) save(ctx context.Context, post *postModel.Post) error {
	if err := im.posts.Create(ctx, post); err != nil {
		translated := postService.TranslateWriteError(err)
		if apperr.Is(translated, apperr.KindConflict) {
			return errors.New(apperr.From(translated).Message)
		}
		return translated
	}
	return nil
}
