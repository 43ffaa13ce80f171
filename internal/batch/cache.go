package batch

import "path/filepath"

// analysisCache memoizes per-path analyses for the lifetime of a run, so a
// path listed twice (or reachable twice through a scan) is analysed once.
// Runs are single-threaded, so no locking is needed.
type analysisCache struct {
	entries map[string]*ImageAnalysis
}

func newAnalysisCache() *analysisCache {
	return &analysisCache{entries: make(map[string]*ImageAnalysis)}
}

func (c *analysisCache) get(key string) (*ImageAnalysis, bool) {
	a, ok := c.entries[key]
	return a, ok
}

func (c *analysisCache) put(key string, a *ImageAnalysis) {
	c.entries[key] = a
}

// cacheKey normalizes a path so lexically equivalent spellings share an entry.
func cacheKey(path string) string {
	return filepath.Clean(path)
}
