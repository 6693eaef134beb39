package kv

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache"

	"github.com/yeisme/goatdesk/pkg/configs"
)

// GroupcacheKV 基于 Groupcache 的 KV 实现.
//
// groupcache 中的值不可变，因此每个键带一个版本号，Set/Delete 递增版本，
// 读取时以 key@version 访问缓存组，旧版本自然失效.
type GroupcacheKV struct {
	cache  *groupcache.Group    // Groupcache 缓存组
	peers  *groupcache.HTTPPool // 对等节点池
	getter groupcache.Getter    // 获取器
	data   map[string][]byte    // 本地存储数据
	ver    map[string]uint64    // 键版本
	mu     sync.RWMutex         // 保护 data/ver 的读写锁
}

// groupcacheGetter 实现 groupcache.Getter 接口.
type groupcacheGetter struct {
	kv *GroupcacheKV
}

func (g *groupcacheGetter) Get(_ context.Context, vkey string, dest groupcache.Sink) error {
	key := vkey
	if i := strings.LastIndexByte(vkey, '@'); i >= 0 {
		key = vkey[:i]
	}

	g.kv.mu.RLock()
	value, exists := g.kv.data[key]
	g.kv.mu.RUnlock()

	if !exists {
		return fmt.Errorf("key not found: %s", key)
	}

	if err := dest.SetBytes(value); err != nil {
		return fmt.Errorf("failed to set bytes to sink: %w", err)
	}

	return nil
}

// NewGroupcacheKV 创建 Groupcache KV 实例.
func NewGroupcacheKV(ctx context.Context, config any) (KVStore, error) {
	gcConfig, ok := config.(*configs.GroupcacheKVConfig)
	if !ok {
		return nil, fmt.Errorf("invalid Groupcache config")
	}

	kv := &GroupcacheKV{
		data: make(map[string][]byte),
		ver:  make(map[string]uint64),
	}

	// 创建 getter
	kv.getter = &groupcacheGetter{kv: kv}

	// 同名 group 只能注册一次
	if existing := groupcache.GetGroup(gcConfig.Name); existing != nil {
		return nil, fmt.Errorf("groupcache group %q already registered", gcConfig.Name)
	}

	kv.cache = groupcache.NewGroup(gcConfig.Name, gcConfig.CacheBytes, kv.getter)

	// 如果有对等节点，设置 HTTP 池
	if len(gcConfig.Peers) > 0 {
		kv.peers = groupcache.NewHTTPPoolOpts(gcConfig.Self, &groupcache.HTTPPoolOptions{})
		kv.peers.Set(gcConfig.Peers...)
	}

	return kv, nil
}

func (g *GroupcacheKV) versioned(key string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.data[key]; !ok {
		return "", false
	}

	return key + "@" + strconv.FormatUint(g.ver[key], 10), true
}

// Get 获取键的值.
func (g *GroupcacheKV) Get(ctx context.Context, key string) ([]byte, error) {
	vkey, ok := g.versioned(key)
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}

	var data []byte

	if err := g.cache.Get(ctx, vkey, groupcache.AllocatingByteSliceSink(&data)); err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	val, expired, _, err := decodeWithTTL(data, time.Now())
	if err != nil {
		return nil, err
	}

	if expired {
		_ = g.Delete(ctx, key)
		return nil, fmt.Errorf("key not found: %s", key)
	}

	// 返回副本
	result := make([]byte, len(val))
	copy(result, val)

	return result, nil
}

// Set 设置键的值.
func (g *GroupcacheKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, _, err := encodeWithTTL(value, ttl)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.data[key] = append([]byte(nil), encoded...)
	g.ver[key]++

	return nil
}

// Delete 删除键.
func (g *GroupcacheKV) Delete(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.data, key)
	g.ver[key]++

	return nil
}

// Exists 检查键是否存在.
func (g *GroupcacheKV) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := g.Get(ctx, key); err != nil {
		return false, nil
	}

	return true, nil
}

// Keys 获取匹配 glob 模式的键.
func (g *GroupcacheKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, len(g.data))
	for key := range g.data {
		if matchKey(pattern, key) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Close 关闭缓存.
func (g *GroupcacheKV) Close() error {
	// Groupcache 没有显式的关闭方法
	return nil
}

func init() {
	RegisterKVFactory(KVTypeGroupcache, NewGroupcacheKV)
}
