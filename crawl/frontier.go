package crawl

import (
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/bloom"
)

var _ medroster.URLFrontier = (*Frontier)(nil)

// Frontier queues listing pages by descending priority. Links with equal
// priority leave in the order they arrived. A Bloom filter remembers every
// URL ever pushed, so a page is queued at most once even after it is popped.
//
// Frontier is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []medroster.DiscoveredLink
}

// NewFrontier sizes the seen-set for n URLs at false positive rate fpRate.
// A false positive drops a page that was never visited; the rate bounds how
// often that happens.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

func (f *Frontier) Push(link medroster.DiscoveredLink) bool {
	link.URL = withoutFragment(link.URL)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen.TestAndAdd(link.URL) {
		return false
	}
	// Insert after every link of equal or higher priority.
	i, _ := slices.BinarySearchFunc(f.queue, link.Priority, func(q medroster.DiscoveredLink, p medroster.LinkPriority) int {
		if q.Priority >= p {
			return -1
		}
		return 1
	})
	f.queue = slices.Insert(f.queue, i, link)
	return true
}

func (f *Frontier) Pop() (medroster.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return medroster.DiscoveredLink{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(withoutFragment(rawURL))
}

func withoutFragment(rawURL string) string {
	u, _, _ := strings.Cut(rawURL, "#")
	return u
}
