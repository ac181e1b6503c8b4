// Package backfill 为已上传的媒体补齐缺失的缩略图。
package backfill

import (
	"context"
	"fmt"

	"github.com/proofpage/internal/imaging"
	"github.com/proofpage/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultBatchSize 是键集分页扫描的每页行数。
	DefaultBatchSize = 100

	thumbCacheControl = "31536000"
	thumbContentType  = "image/jpeg"
)

// 传给 Recorder 的单行处理结果。
const (
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Target 描述一张同时包含原图字段和缩略图字段的表。
type Target struct {
	Table          string
	OriginalColumn string
	ThumbColumn    string
	Size           imaging.Size
}

// Targets 按此顺序处理。
var Targets = []Target{
	{Table: "testimonials", OriginalColumn: "avatar_url", ThumbColumn: "avatar_thumb_url", Size: imaging.AvatarSize},
	{Table: "work_examples", OriginalColumn: "image_url", ThumbColumn: "image_thumb_url", Size: imaging.WorkImageSize},
}

// Stats 统计单张表的行数，汇总时统计全部表。
type Stats struct {
	Table   string
	Scanned int
	Updated int
	Skipped int
	Failed  int
}

func (s *Stats) add(other Stats) {
	s.Scanned += other.Scanned
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Report 是一次运行的结果。
type Report struct {
	Tables []Stats
	Total  Stats
}

// Recorder 每处理一行调用一次。
type Recorder interface {
	BackfillRow(table, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) BackfillRow(string, string) {}

// Option 配置 Job。
type Option func(*Job)

// WithBatchSize 覆盖 DefaultBatchSize，小于 1 的值会被忽略。
func WithBatchSize(n int) Option {
	return func(j *Job) {
		if n > 0 {
			j.batch = n
		}
	}
}

// WithRecorder 将单行处理结果上报给 r。
func WithRecorder(r Recorder) Option {
	return func(j *Job) {
		if r != nil {
			j.recorder = r
		}
	}
}

// WithTargets 替换 Targets。
func WithTargets(targets ...Target) Option {
	return func(j *Job) {
		j.targets = targets
	}
}

// Job 顺序扫描媒体表并补齐缩略图。
type Job struct {
	db       *gorm.DB
	store    storage.Store
	logger   *zap.Logger
	batch    int
	recorder Recorder
	targets  []Target
}

// NewJob 返回从 gdb 读取记录、从 store 读取对象的 Job。
func NewJob(gdb *gorm.DB, store storage.Store, logger *zap.Logger, opts ...Option) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &Job{
		db:       gdb,
		store:    store,
		logger:   logger,
		batch:    DefaultBatchSize,
		recorder: noopRecorder{},
		targets:  Targets,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

type mediaRow struct {
	ID       uint
	Original *string
}

// Run 依次处理每个目标。单行失败只计数并记录日志；
// 批量查询失败则停止运行，并连同已完成的部分报告一起返回。
func (j *Job) Run(ctx context.Context) (Report, error) {
	j.logger.Info("starting thumbnail backfill",
		zap.String("bucket", j.store.Bucket()),
		zap.Int("batch_size", j.batch))

	report := Report{Total: Stats{Table: "total"}}
	for _, target := range j.targets {
		stats, err := j.processTable(ctx, target)
		report.Tables = append(report.Tables, stats)
		report.Total.add(stats)
		if err != nil {
			return report, err
		}
		j.logger.Info("table backfilled",
			zap.String("table", stats.Table),
			zap.Int("scanned", stats.Scanned),
			zap.Int("updated", stats.Updated),
			zap.Int("skipped", stats.Skipped),
			zap.Int("failed", stats.Failed))
	}
	return report, nil
}

func (j *Job) processTable(ctx context.Context, target Target) (Stats, error) {
	stats := Stats{Table: target.Table}
	var lastID uint

	for {
		var rows []mediaRow
		err := j.db.WithContext(ctx).
			Table(target.Table).
			Select("id, "+target.OriginalColumn+" AS original").
			Where(target.ThumbColumn+" IS NULL").
			Where("id > ?", lastID).
			Order("id asc").
			Limit(j.batch).
			Scan(&rows).Error
		if err != nil {
			return stats, fmt.Errorf("[%s] query failed: %w", target.Table, err)
		}
		if len(rows) == 0 {
			return stats, nil
		}

		for _, row := range rows {
			lastID = row.ID
			stats.Scanned++

			outcome, err := j.processRow(ctx, target, row)
			switch outcome {
			case OutcomeUpdated:
				stats.Updated++
			case OutcomeSkipped:
				stats.Skipped++
			default:
				stats.Failed++
				j.logger.Error("thumbnail backfill failed",
					zap.String("table", target.Table),
					zap.Uint("row_id", row.ID),
					zap.Error(err))
			}
			j.recorder.BackfillRow(target.Table, outcome)
		}
	}
}

func (j *Job) processRow(ctx context.Context, target Target, row mediaRow) (string, error) {
	var raw string
	if row.Original != nil {
		raw = *row.Original
	}
	original, ok := ResolvePath(raw, j.store.Bucket())
	if !ok {
		return OutcomeSkipped, nil
	}
	thumbPath := ThumbPath(original)

	data, err := j.store.Download(ctx, original)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("download failed for %s: %w", original, err)
	}

	thumb, err := imaging.Thumbnail(data, target.Size, imaging.DefaultQuality)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("resize failed for %s: %w", original, err)
	}

	err = j.store.Upload(ctx, thumbPath, thumb, storage.UploadOptions{
		Upsert:       true,
		ContentType:  thumbContentType,
		CacheControl: thumbCacheControl,
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("upload failed for %s: %w", thumbPath, err)
	}

	err = j.db.WithContext(ctx).Table(target.Table).Where("id = ?", row.ID).Update(target.ThumbColumn, thumbPath).Error
	if err != nil {
		return OutcomeFailed, fmt.Errorf("db update failed for %d: %w", row.ID, err)
	}
	return OutcomeUpdated, nil
}
