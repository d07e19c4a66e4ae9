// Package search implements the search-as-you-type flow behind the search
// modal. Keystrokes are debounced: a query is dispatched to the remote store
// only after the input has been quiet for a short interval, and a new
// keystroke cancels any pending not-yet-sent query. In-flight requests are
// not aborted; a late response for a superseded query is discarded instead of
// overwriting newer results.
//
// Package search 实现搜索弹窗背后的即输即搜流程。按键经过防抖处理：
// 只有输入安静一小段时间后才向远程存储发送查询，新按键会取消任何待发送的查询。
// 进行中的请求不会被中止；过期查询的迟到响应会被丢弃，而不是覆盖较新的结果。
package search

import (
	"context"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

const (
	// DefaultDebounce is the quiet interval before a query dispatches.
	// DefaultDebounce 是查询发送前的安静间隔。
	DefaultDebounce = 300 * time.Millisecond

	// DefaultMinQueryLen is the shortest query worth sending; anything
	// shorter clears the results without a remote call.
	// DefaultMinQueryLen 是值得发送的最短查询；更短的查询不发远程调用，直接清空结果。
	DefaultMinQueryLen = 3

	// DefaultResultLimit caps how many results the modal shows.
	// DefaultResultLimit 限制弹窗显示的结果数量。
	DefaultResultLimit = 6

	// dispatchTimeout bounds each remote search call.
	// dispatchTimeout 限定每次远程搜索调用的时长。
	dispatchTimeout = 5 * time.Second
)

// LiveSearch debounces keystrokes into remote title searches and keeps the
// latest completed result set. Safe for concurrent use.
//
// LiveSearch 将按键防抖为远程标题搜索，并保存最近完成的结果集。可安全并发使用。
type LiveSearch struct {
	gateway  store.RemoteStore
	delay    time.Duration
	minLen   int
	limit    int

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	results []store.Product
	lastErr error
	closed  bool
}

// Option customizes a LiveSearch.
//
// Option 自定义LiveSearch。
type Option func(*LiveSearch)

// WithDebounce overrides the quiet interval.
// WithDebounce 覆盖安静间隔。
func WithDebounce(d time.Duration) Option {
	return func(ls *LiveSearch) { ls.delay = d }
}

// WithMinQueryLen overrides the minimum dispatchable query length.
// WithMinQueryLen 覆盖可发送查询的最小长度。
func WithMinQueryLen(n int) Option {
	return func(ls *LiveSearch) { ls.minLen = n }
}

// WithResultLimit overrides the result cap.
// WithResultLimit 覆盖结果上限。
func WithResultLimit(n int) Option {
	return func(ls *LiveSearch) { ls.limit = n }
}

// NewLiveSearch creates a live search over the given gateway.
//
// NewLiveSearch 在给定网关上创建即时搜索。
//
// Parameters:
//   - gateway: The remote store to query
//   - opts: Optional overrides for the debounce tuning
//
// Returns:
//   - *LiveSearch: A new live search instance
func NewLiveSearch(gateway store.RemoteStore, opts ...Option) *LiveSearch {
	ls := &LiveSearch{
		gateway: gateway,
		delay:   DefaultDebounce,
		minLen:  DefaultMinQueryLen,
		limit:   DefaultResultLimit,
	}
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

// Type registers a keystroke: the full current query text. Any pending
// not-yet-sent query is cancelled. Short queries clear the results
// immediately; longer ones dispatch after the quiet interval.
//
// Type 登记一次按键：当前完整的查询文本。任何待发送的查询都被取消。
// 短查询立即清空结果；较长的查询在安静间隔后发送。
//
// Parameters:
//   - query: The current full query text
func (ls *LiveSearch) Type(query string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.closed {
		return
	}

	// Every keystroke supersedes whatever was pending or in flight.
	// 每次按键都使待发送或进行中的查询作废。
	ls.gen++
	if ls.timer != nil {
		ls.timer.Stop()
		ls.timer = nil
	}

	if utf8.RuneCountInString(query) < ls.minLen {
		ls.results = nil
		ls.lastErr = nil
		return
	}

	gen := ls.gen
	ls.timer = time.AfterFunc(ls.delay, func() {
		ls.dispatch(gen, query)
	})
}

// dispatch runs the remote search for one settled query and publishes the
// outcome unless a newer keystroke has arrived in the meantime.
//
// dispatch 为一个已稳定的查询执行远程搜索，并在没有更新按键到来时发布结果。
func (ls *LiveSearch) dispatch(gen uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	results, err := ls.gateway.SearchProducts(ctx, query, ls.limit)

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.closed || gen != ls.gen {
		// A late response for a superseded query: safely ignorable.
		// 过期查询的迟到响应：可安全忽略。
		return
	}
	if err != nil {
		log.Printf("[SEARCH] Query %q failed: %v", query, err)
		ls.results = nil
		ls.lastErr = err
		return
	}
	ls.results = results
	ls.lastErr = nil
}

// Results returns the latest completed result set and the error from the
// latest dispatch, for the degraded empty-result display.
//
// Results 返回最近完成的结果集以及最近一次发送的错误，用于降级的空结果显示。
//
// Returns:
//   - []store.Product: The current results, possibly nil
//   - error: The latest dispatch error, nil when the last dispatch succeeded
func (ls *LiveSearch) Results() ([]store.Product, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	out := make([]store.Product, len(ls.results))
	copy(out, ls.results)
	return out, ls.lastErr
}

// Close cancels any pending dispatch and discards future ones.
//
// Close 取消任何待发送的查询并丢弃后续的发送。
func (ls *LiveSearch) Close() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.closed = true
	if ls.timer != nil {
		ls.timer.Stop()
		ls.timer = nil
	}
}
