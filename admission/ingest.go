package admission

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/venuzlabs/feedkit/core"
)

const (
	// DefaultConcurrency 是批量准入的并发上限。
	DefaultConcurrency = 8
	// DefaultRefPoolSize 是重复检测参照集的容量。
	DefaultRefPoolSize = 500
	// cellSizeDeg 约 1km 网格，落在同一格的候选串行判定，
	// 避免同批近邻重复内容双双通过。
	cellSizeDeg = 0.01
)

// BatchResult 是一次批量准入的汇总。
type BatchResult struct {
	Admitted []*core.Item
	Rejected map[core.RejectReason]int
}

// Ingestor 编排批量准入：并发判定、同格串行、通过即落库。
type Ingestor struct {
	Filter *Filter
	Store  core.ContentStore
	Log    zerolog.Logger

	// Concurrency 是并发判定上限，0 取默认值
	Concurrency int
	// RefPoolSize 是参照集容量，0 取默认值
	RefPoolSize int
}

// NewIngestor 构造 Ingestor。
func NewIngestor(f *Filter, store core.ContentStore, log zerolog.Logger) *Ingestor {
	return &Ingestor{Filter: f, Store: store, Log: log}
}

// IngestBatch 对一批候选做准入并将通过项写入存储。
//
// 参照集 = 批前存量快照 + 同批已通过项；同一地理格内的候选串行判定，
// 保证近邻重复不会并发互放。单条落库失败不终止整批，仅记录日志。
func (g *Ingestor) IngestBatch(ctx context.Context, cands []*core.Candidate) (*BatchResult, error) {
	refSize := g.RefPoolSize
	if refSize <= 0 {
		refSize = DefaultRefPoolSize
	}
	base, err := g.Store.QueryPool(ctx, core.PoolQuery{Limit: refSize})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleAdmission, core.ErrorCodeUnavailable,
			fmt.Sprintf("load reference pool: %v", err))
	}

	res := &BatchResult{Rejected: make(map[core.RejectReason]int)}
	var (
		mu    sync.Mutex // 保护 res 与 admitted 追加
		cells = newCellLocks()
	)

	eg, ectx := errgroup.WithContext(ctx)
	limit := g.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	eg.SetLimit(limit)

	for _, cand := range cands {
		if cand == nil {
			continue
		}
		cand := cand
		eg.Go(func() error {
			cell := cells.lock(cand.Coords)
			defer cell.Unlock()

			mu.Lock()
			refs := make([]*core.Item, len(base), len(base)+len(res.Admitted))
			copy(refs, base)
			refs = append(refs, res.Admitted...)
			mu.Unlock()

			verdict := g.Filter.Check(ectx, cand, refs)
			if !verdict.Approved {
				g.Log.Info().
					Str("title", cand.Title).
					Str("source", cand.SourceSite).
					Str("reason", string(verdict.Reason)).
					Msg("candidate rejected")
				mu.Lock()
				res.Rejected[verdict.Reason]++
				mu.Unlock()
				return nil
			}

			if err := g.Store.Insert(ectx, verdict.Item); err != nil {
				g.Log.Error().Err(err).
					Str("item_id", verdict.Item.ID).
					Msg("insert admitted item")
				return nil
			}

			g.Log.Debug().
				Str("item_id", verdict.Item.ID).
				Int("quality_score", verdict.Item.QualityScore).
				Msg("candidate admitted")
			mu.Lock()
			res.Admitted = append(res.Admitted, verdict.Item)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// cellLocks 按地理格分配互斥锁；无坐标候选共用全局格。
type cellLocks struct {
	mu    sync.Mutex
	cells map[string]*sync.Mutex
}

func newCellLocks() *cellLocks {
	return &cellLocks{cells: make(map[string]*sync.Mutex)}
}

func (c *cellLocks) lock(pt *core.GeoPoint) *sync.Mutex {
	key := "global"
	if pt != nil {
		key = fmt.Sprintf("%d:%d",
			int(math.Floor(pt.Lat/cellSizeDeg)),
			int(math.Floor(pt.Lng/cellSizeDeg)))
	}

	c.mu.Lock()
	m, ok := c.cells[key]
	if !ok {
		m = &sync.Mutex{}
		c.cells[key] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m
}
