package chunker

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/botirk38/semanticchunk/types"
)

// sizeCacheEntries bounds the memoized sizer. The binary search probes at
// most O(log n) distinct prefixes per chunk, so this is generous headroom.
const sizeCacheEntries = 1024

// sizeKey identifies a probe slice by its post-trim byte range.
type sizeKey struct {
	offset int
	length int
}

// memoizedSizer caches sizes per byte range of the input text. Within one
// chunk's search loop the engine queries overlapping prefixes of the same
// base offset many times; memoization turns each repeated probe into a map
// lookup, which matters when the sizer wraps a tokenizer.
//
// It also applies the trim policy before sizing when trimming is enabled,
// so that classification matches what is ultimately emitted.
type memoizedSizer struct {
	sizer types.Sizer
	cache *lru.Cache[sizeKey, int]
	text  string
	trim  trimPolicy
	// trimEnabled mirrors ChunkConfig.Trim
	trimEnabled bool
}

func newMemoizedSizer(sizer types.Sizer, text string, trim trimPolicy, trimEnabled bool) *memoizedSizer {
	cache, err := lru.New[sizeKey, int](sizeCacheEntries)
	if err != nil {
		// lru.New only fails on a non-positive size
		panic(err)
	}
	return &memoizedSizer{
		sizer:       sizer,
		cache:       cache,
		text:        text,
		trim:        trim,
		trimEnabled: trimEnabled,
	}
}

// sizeRange returns the size of text[start:end] after trimming.
func (m *memoizedSizer) sizeRange(start, end int) int {
	chunk := m.text[start:end]
	offset := start
	if m.trimEnabled {
		offset, chunk = m.trim.trim(offset, chunk)
	}
	key := sizeKey{offset: offset, length: len(chunk)}
	if size, ok := m.cache.Get(key); ok {
		return size
	}
	size := m.sizer.Size(chunk)
	m.cache.Add(key, size)
	return size
}

// checkCapacity sizes text[start:end] and classifies it against capacity.
func (m *memoizedSizer) checkCapacity(start, end int, capacity Capacity) (int, types.Fit) {
	size := m.sizeRange(start, end)
	return size, capacity.Fit(size)
}

// clear drops all cached sizes. Called once the cursor advances to the
// next chunk, since old probe ranges will not be queried again.
func (m *memoizedSizer) clear() {
	m.cache.Purge()
}
