package cart

import (
	"log"
	"sync"
)

// Storage combines saving and loading cart lines for a session.
// Storage 组合了会话购物车行的保存和加载。
type Storage interface {
	Persister

	// LoadCart returns the persisted lines for a session, oldest first.
	// LoadCart 返回会话持久化的购物车行，最早的在前。
	LoadCart(sessionID string) ([]Line, error)
}

// Manager hands out one Cart per session, restoring persisted lines the
// first time a session is seen. A session whose saved lines cannot be read
// starts with an empty cart; shopping goes on either way.
//
// Manager 为每个会话提供一个Cart，首次见到会话时恢复持久化的购物车行。
// 无法读取已保存行的会话从空购物车开始；无论如何购物都会继续。
type Manager struct {
	storage Storage
	mu      sync.Mutex
	carts   map[string]*Cart
}

// NewManager creates a cart manager backed by the given storage.
//
// NewManager 创建由给定存储支持的购物车管理器。
//
// Parameters:
//   - storage: Where session carts are persisted and restored from
//
// Returns:
//   - *Manager: A new cart manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		carts:   make(map[string]*Cart),
	}
}

// Get returns the cart for a session, creating and restoring it on first use.
// Subsequent calls for the same session return the same Cart instance.
//
// Get 返回会话的购物车，首次使用时创建并恢复。
// 对同一会话的后续调用返回相同的Cart实例。
func (m *Manager) Get(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[sessionID]; ok {
		return c
	}

	c := New(sessionID, m.storage)
	lines, err := m.storage.LoadCart(sessionID)
	if err != nil {
		log.Printf("[CART] Failed to restore session %s: %v", sessionID, err)
	} else if len(lines) > 0 {
		c.Restore(lines)
	}
	m.carts[sessionID] = c
	return c
}
