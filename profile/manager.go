// Package profile 管理访客偏好画像的服务端存取：
// 首请求播种、互动回流更新、显式重置。
//
// 画像以 viewer-id 为 key 持久化为 JSON；并发更新经由按 key 分段的
// 互斥锁做 read-modify-write 串行化，避免互动事件互相覆盖。
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/venuzlabs/feedkit/core"
)

const (
	keyPrefix = "profile:"

	// lockShards 是按 viewer hash 分段的锁数量：
	// 锁集大小固定，不随访客数增长；不同访客可能共享一把锁，只影响吞吐不影响正确性。
	lockShards = 256
)

// Manager 是偏好画像的服务端存储封装。
type Manager struct {
	store core.Store
	locks [lockShards]sync.Mutex
}

// NewManager 构造 Manager。
func NewManager(store core.Store) *Manager {
	return &Manager{store: store}
}

// Load 读取访客画像；不存在时按 mode 播种并落库。
func (m *Manager) Load(ctx context.Context, viewerID string, mode core.SeedMode) (*core.PreferenceProfile, error) {
	if viewerID == "" {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
			"profile: empty viewer id")
	}

	lk := m.keyLock(viewerID)
	lk.Lock()
	defer lk.Unlock()

	p, err := m.get(ctx, viewerID)
	if err == nil {
		return p, nil
	}
	if !core.IsStoreNotFound(err) {
		return nil, err
	}

	p = core.NewPreferenceProfile(mode)
	if err := m.put(ctx, viewerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyEngagement 将一次互动事件回流到画像并落库。
// 画像不存在时先按默认模式播种。返回更新后的画像。
func (m *Manager) ApplyEngagement(ctx context.Context, viewerID string, b core.Bucket) (*core.PreferenceProfile, error) {
	if viewerID == "" {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
			"profile: empty viewer id")
	}

	lk := m.keyLock(viewerID)
	lk.Lock()
	defer lk.Unlock()

	p, err := m.get(ctx, viewerID)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			return nil, err
		}
		p = core.NewPreferenceProfile(core.SeedDefault)
	}

	p.ApplyEngagement(b)
	if err := m.put(ctx, viewerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset 将画像重置为默认均匀分布（用户显式操作）。
func (m *Manager) Reset(ctx context.Context, viewerID string) (*core.PreferenceProfile, error) {
	lk := m.keyLock(viewerID)
	lk.Lock()
	defer lk.Unlock()

	p := core.NewPreferenceProfile(core.SeedDefault)
	if err := m.put(ctx, viewerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Manager) get(ctx context.Context, viewerID string) (*core.PreferenceProfile, error) {
	data, err := m.store.Get(ctx, keyPrefix+viewerID)
	if err != nil {
		return nil, err
	}

	var p core.PreferenceProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInternalError,
			fmt.Sprintf("profile: decode %s: %v", viewerID, err))
	}
	p.Clamp()
	return &p, nil
}

func (m *Manager) put(ctx context.Context, viewerID string, p *core.PreferenceProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return core.NewDomainError(core.ModuleProfile, core.ErrorCodeInternalError,
			fmt.Sprintf("profile: encode %s: %v", viewerID, err))
	}
	return m.store.Set(ctx, keyPrefix+viewerID, data)
}

func (m *Manager) keyLock(viewerID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(viewerID))
	return &m.locks[h.Sum32()%lockShards]
}
