package memo

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithMaxSize sets the number of results kept. 0 or negative disables the cache.
func WithMaxSize(maxSize int) Option {
	return func(c *inMemoryCache) {
		c.maxSize = maxSize
	}
}
