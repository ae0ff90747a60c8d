package scene

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/obj"
)

// AssetCache loads each mesh and texture file once. It is safe for
// concurrent use; cached assets are shared and must not be modified.
type AssetCache struct {
	mu       sync.Mutex
	textures map[string]*soft3d.Texture
	meshes   map[string]*obj.Model

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats holds asset cache counters.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// NewAssetCache creates an empty cache.
func NewAssetCache() *AssetCache {
	return &AssetCache{
		textures: make(map[string]*soft3d.Texture),
		meshes:   make(map[string]*obj.Model),
	}
}

// Texture returns the texture at path, loading it with LoadTexture on
// first use.
func (c *AssetCache) Texture(path string) (*soft3d.Texture, error) {
	return load(c, c.textures, path, LoadTexture)
}

// Mesh returns the mesh at path, loading it with obj.Load on first use.
func (c *AssetCache) Mesh(path string) (*obj.Model, error) {
	return load(c, c.meshes, path, obj.Load)
}

// load runs fn under the lock so concurrent renders never read one file
// twice. Failures are not cached.
func load[V any](c *AssetCache, m map[string]V, path string, fn func(string) (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := m[path]; ok {
		c.hits.Add(1)
		soft3d.Logger().Debug("asset cache hit", "path", path)
		return v, nil
	}
	c.misses.Add(1)

	v, err := fn(path)
	if err != nil {
		var zero V
		return zero, err
	}
	m[path] = v
	return v, nil
}

// Clear drops every cached asset. Counters are kept.
func (c *AssetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.textures)
	clear(c.meshes)
}

// Stats returns current cache statistics.
func (c *AssetCache) Stats() CacheStats {
	c.mu.Lock()
	n := len(c.textures) + len(c.meshes)
	c.mu.Unlock()
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: n,
	}
}
