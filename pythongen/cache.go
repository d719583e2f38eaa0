package pythongen

import (
	"fmt"
	"sync"
	"time"

	spooky "github.com/dgryski/go-spooky"
	"github.com/pysrcgen/pysrcgen/internal/collections"
	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonjson"
)

const (
	// sourceCacheSize specifies the max number of generated sources to cache
	sourceCacheSize = 1000
	// staleCutoff specifies when cache entries are considered stale
	staleCutoff = 10 * time.Minute
)

var (
	lock        sync.Mutex
	sourceCache = collections.NewOrderedMap(sourceCacheSize + 1)
)

type sourceEntry struct {
	lastAccessTs time.Time
	src          string
	err          error
}

// GenerateCached renders root like Generate, memoizing results by tree
// contents. Calls whose Options carry callbacks bypass the cache, since
// callback behavior cannot be part of a cache key.
func GenerateCached(root pythonast.Node, opts Options) (string, error) {
	if opts.StringFormatter != nil || opts.SourceFormatter != nil || opts.Visit != nil {
		return Generate(root, opts)
	}
	key, ok := cacheKey(root, opts)
	if !ok {
		return Generate(root, opts)
	}
	if entry, ok := getCachedSource(key); ok {
		return entry.src, entry.err
	}
	src, err := Generate(root, opts)
	cacheSource(key, src, err)
	return src, err
}

// PurgeSourceCache purges the generated-source cache
func PurgeSourceCache() {
	lock.Lock()
	defer lock.Unlock()
	sourceCache.RangeInc(func(k uint64, v interface{}) bool {
		sourceCache.Delete(k)
		return true
	})
}

// --

func cacheKey(root pythonast.Node, opts Options) (uint64, bool) {
	data, err := pythonjson.Encode(root)
	if err != nil {
		return 0, false
	}
	sig := fmt.Sprintf("%s|%t|%d", opts.Indent, opts.AddLineInfo, opts.MaxDepth)
	return spooky.Hash64(data) ^ spooky.Hash64([]byte(sig)), true
}

func getCachedSource(key uint64) (*sourceEntry, bool) {
	lock.Lock()
	defer lock.Unlock()
	entry, ok := sourceCache.Get(key)
	removeStaleCacheEntriesLocked()
	if !ok {
		return nil, false
	}
	// update last access ts if entry existed
	cacheSourceLocked(key, entry.(*sourceEntry).src, entry.(*sourceEntry).err)
	return entry.(*sourceEntry), true
}

func cacheSource(key uint64, src string, err error) {
	lock.Lock()
	defer lock.Unlock()
	removeStaleCacheEntriesLocked()
	cacheSourceLocked(key, src, err)
}

func cacheSourceLocked(key uint64, src string, err error) {
	entry, ok := sourceCache.Delete(key)
	if entry == nil || !ok {
		entry = &sourceEntry{}
	}

	*(entry.(*sourceEntry)) = sourceEntry{
		lastAccessTs: time.Now(),
		src:          src,
		err:          err,
	}
	sourceCache.Set(key, entry)
}

// removeStaleCacheEntriesLocked evicts oldest-first while the cache is over
// capacity or the entry's timestamp is past the cutoff
func removeStaleCacheEntriesLocked() {
	sourceCache.RangeInc(func(k uint64, v interface{}) bool {
		if sourceCache.Len() > sourceCacheSize || time.Since(v.(*sourceEntry).lastAccessTs) > staleCutoff {
			sourceCache.Delete(k)
			return true
		}
		return false
	})
}
