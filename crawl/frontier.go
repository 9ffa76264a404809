package crawl

import (
	"sync"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/bloom"
)

// Bloom filter sizing for the visited-set fast path.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for the fast path.
	frontierFalsePositiveRate = 0.01
)

// entry is one frontier slot: a normalized URL and its link-hop depth.
type entry struct {
	url   string
	depth int
}

// engineState holds all mutable crawler state behind one mutex.
type engineState struct {
	mu            sync.Mutex
	queue         fifo
	visited       visitedSet
	results       []*frontier.Result
	lastRequest   map[string]time.Time
	robots        map[string]*frontier.RobotsPolicy
	contentHashes map[string]struct{}
}

func (s *engineState) reset() {
	s.queue = fifo{}
	s.visited = newVisitedSet()
	s.results = nil
	s.lastRequest = make(map[string]time.Time)
	s.robots = make(map[string]*frontier.RobotsPolicy)
	s.contentHashes = make(map[string]struct{})
}

// fifo is a growable array with a head index rather than a linked
// structure, for cache locality. Popped slots are compacted away once
// the dead prefix dominates the backing array.
type fifo struct {
	items []entry
	head  int
}

func (q *fifo) push(e entry) {
	q.items = append(q.items, e)
}

func (q *fifo) pop() (entry, bool) {
	if q.head >= len(q.items) {
		return entry{}, false
	}
	e := q.items[q.head]
	q.items[q.head] = entry{}
	q.head++

	if q.head > 64 && q.head > len(q.items)/2 {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return e, true
}

func (q *fifo) len() int {
	return len(q.items) - q.head
}

// visitedSet tracks every normalized URL ever enqueued. A Bloom filter
// answers the common "definitely not seen" case cheaply; the exact set
// settles positives, so a filter false positive can never drop a URL.
type visitedSet struct {
	fast  *bloom.Filter
	exact map[string]struct{}
}

func newVisitedSet() visitedSet {
	return visitedSet{
		fast:  bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		exact: make(map[string]struct{}),
	}
}

func (v *visitedSet) contains(url string) bool {
	if !v.fast.Test(url) {
		return false
	}
	_, ok := v.exact[url]
	return ok
}

func (v *visitedSet) add(url string) {
	v.fast.Add(url)
	v.exact[url] = struct{}{}
}

func (v *visitedSet) len() int {
	return len(v.exact)
}
