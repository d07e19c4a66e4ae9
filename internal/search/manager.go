package search

import (
	"sync"

	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// Manager hands out one LiveSearch per session, so each shopper's keystrokes
// debounce independently. One shopper typing never cancels another shopper's
// pending query or overwrites their results.
//
// Manager 为每个会话提供一个LiveSearch，使每位顾客的按键独立防抖。
// 一位顾客的输入不会取消另一位顾客的待发送查询，也不会覆盖其结果。
type Manager struct {
	gateway store.RemoteStore
	opts    []Option

	mu       sync.Mutex
	sessions map[string]*LiveSearch
	closed   bool
}

// NewManager creates a search manager over the given gateway. The options are
// applied to every per-session LiveSearch it creates.
//
// NewManager 在给定网关上创建搜索管理器。选项会应用到它创建的每个会话级LiveSearch。
//
// Parameters:
//   - gateway: The remote store to query
//   - opts: Optional overrides for the debounce tuning
//
// Returns:
//   - *Manager: A new search manager
func NewManager(gateway store.RemoteStore, opts ...Option) *Manager {
	return &Manager{
		gateway:  gateway,
		opts:     opts,
		sessions: make(map[string]*LiveSearch),
	}
}

// Get returns the live search for a session, creating it on first use.
// Subsequent calls for the same session return the same instance.
//
// Get 返回会话的即时搜索，首次使用时创建。对同一会话的后续调用返回相同实例。
func (m *Manager) Get(sessionID string) *LiveSearch {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ls, ok := m.sessions[sessionID]; ok {
		return ls
	}

	ls := NewLiveSearch(m.gateway, m.opts...)
	if m.closed {
		ls.Close()
	}
	m.sessions[sessionID] = ls
	return ls
}

// Close shuts down every session's live search and any created afterwards.
//
// Close 关闭每个会话的即时搜索以及之后创建的实例。
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for _, ls := range m.sessions {
		ls.Close()
	}
}
