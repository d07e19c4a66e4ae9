// Package localstore implements client-local persisted state on an embedded
// SQLite database: cart contents keyed by session, the admin-authenticated
// flag, and the bounded recently-viewed product list. Nothing here belongs to
// the remote store; this is the Go rendition of the browser's local storage.
//
// Package localstore 在嵌入式SQLite数据库上实现客户端本地持久化状态：
// 按会话键控的购物车内容、管理员已认证标志以及有界的最近浏览产品列表。
// 这里的内容都不属于远程存储；这是浏览器本地存储的Go演绎。
package localstore

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/achrafamalou77/ephedia-store/internal/cart"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// RecentlyViewedLimit bounds the history list per session.
// RecentlyViewedLimit 限制每个会话的历史列表长度。
const RecentlyViewedLimit = 12

// adminFlagKey is the settings row holding the admin session flag.
// adminFlagKey 是保存管理员会话标志的设置行。
const adminFlagKey = "admin_authenticated"

// cartLine is the persisted form of one cart line.
// cartLine 是一个购物车商品行的持久化形式。
type cartLine struct {
	ID        uint    `gorm:"primarykey"`
	SessionID string  `gorm:"size:64;index;not null"`
	ProductID string  `gorm:"size:64;not null"`
	Title     string  `gorm:"size:200"`
	Price     float64 `gorm:"not null"`
	ImageURL  string  `gorm:"size:500"`
	Category  string  `gorm:"size:100"`
	Quantity  int     `gorm:"not null;default:1"`
	Position  int     `gorm:"not null;default:0"`
}

// TableName returns the table name for cart lines.
func (cartLine) TableName() string { return "cart_lines" }

// setting is a simple key/value row for client flags.
// setting 是客户端标志的简单键值行。
type setting struct {
	Key   string `gorm:"primarykey;size:64"`
	Value string `gorm:"size:200"`
}

// TableName returns the table name for settings.
func (setting) TableName() string { return "settings" }

// viewedProduct is one entry of the recently-viewed history.
// viewedProduct 是最近浏览历史的一个条目。
type viewedProduct struct {
	ID        uint      `gorm:"primarykey"`
	SessionID string    `gorm:"size:64;index;not null"`
	ProductID string    `gorm:"size:64;not null"`
	Title     string    `gorm:"size:200"`
	Price     float64   `gorm:"not null"`
	ImageURL  string    `gorm:"size:500"`
	ViewedAt  time.Time `gorm:"index;not null"`
}

// TableName returns the table name for the viewing history.
func (viewedProduct) TableName() string { return "recently_viewed" }

// Store is the client-local storage handle. Safe for concurrent use;
// GORM serializes access to the underlying SQLite connection.
//
// Store 是客户端本地存储句柄。可安全并发使用；GORM会串行化对底层SQLite连接的访问。
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the local database at path.
// Use ":memory:" for an ephemeral store in tests.
//
// Open 打开（并迁移）位于path的本地数据库。测试中可用":memory:"作为临时存储。
//
// Parameters:
//   - path: SQLite database file path
//
// Returns:
//   - *Store: The opened store
//   - error: An error if opening or migrating fails
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.AutoMigrate(&cartLine{}, &setting{}, &viewedProduct{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveCart replaces the persisted cart for a session with the given lines.
// It implements cart.Persister, so every cart mutation lands here.
//
// SaveCart 用给定的商品行替换会话的持久化购物车。它实现cart.Persister，因此每次购物车修改都会落到这里。
//
// Parameters:
//   - sessionID: The session whose cart is being saved
//   - lines: The full current line set
//
// Returns:
//   - error: An error if the write fails
func (s *Store) SaveCart(sessionID string, lines []cart.Line) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&cartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		rows := make([]cartLine, 0, len(lines))
		for i, l := range lines {
			rows = append(rows, cartLine{
				SessionID: sessionID,
				ProductID: l.ProductID,
				Title:     l.Title,
				Price:     l.Price,
				ImageURL:  l.ImageURL,
				Category:  l.Category,
				Quantity:  l.Quantity,
				Position:  i,
			})
		}
		return tx.Create(&rows).Error
	})
}

// LoadCart returns the persisted cart lines for a session in their original
// order. A session with no saved cart yields an empty slice, not an error.
//
// LoadCart 按原始顺序返回会话的持久化购物车商品行。没有已保存购物车的会话产生空切片而不是错误。
//
// Parameters:
//   - sessionID: The session to load
//
// Returns:
//   - []cart.Line: The persisted lines
//   - error: An error if the read fails
func (s *Store) LoadCart(sessionID string) ([]cart.Line, error) {
	var rows []cartLine
	if err := s.db.Where("session_id = ?", sessionID).Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines := make([]cart.Line, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, cart.Line{
			ProductID: r.ProductID,
			Title:     r.Title,
			Price:     r.Price,
			ImageURL:  r.ImageURL,
			Category:  r.Category,
			Quantity:  r.Quantity,
		})
	}
	return lines, nil
}

// SetAdminAuthenticated persists the admin session flag.
//
// SetAdminAuthenticated 持久化管理员会话标志。
//
// Parameters:
//   - authenticated: The new flag value
//
// Returns:
//   - error: An error if the write fails
func (s *Store) SetAdminAuthenticated(authenticated bool) error {
	value := "false"
	if authenticated {
		value = "true"
	}
	row := setting{Key: adminFlagKey, Value: value}
	return s.db.Save(&row).Error
}

// IsAdminAuthenticated reads the admin session flag. A missing row means false.
//
// IsAdminAuthenticated 读取管理员会话标志。缺少该行表示false。
//
// Returns:
//   - bool: The flag value
//   - error: An error if the read fails
func (s *Store) IsAdminAuthenticated() (bool, error) {
	var row setting
	err := s.db.First(&row, "key = ?", adminFlagKey).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read admin flag: %w", err)
	}
	return row.Value == "true", nil
}

// RecordView prepends a product to the session's recently-viewed history,
// deduplicating by product id and trimming the list to RecentlyViewedLimit.
//
// RecordView 将产品前置到会话的最近浏览历史中，按产品id去重并将列表裁剪到RecentlyViewedLimit。
//
// Parameters:
//   - sessionID: The viewing session
//   - p: The product that was viewed
//
// Returns:
//   - error: An error if the write fails
func (s *Store) RecordView(sessionID string, p store.Product) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Drop any older entry for the same product.
		// 删除同一产品的任何旧条目。
		if err := tx.Where("session_id = ? AND product_id = ?", sessionID, p.ID).
			Delete(&viewedProduct{}).Error; err != nil {
			return err
		}

		row := viewedProduct{
			SessionID: sessionID,
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			ViewedAt:  time.Now(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		// Trim everything past the bound, oldest first.
		// 裁剪超出界限的所有条目，最旧的先删。
		var overflow []viewedProduct
		if err := tx.Where("session_id = ?", sessionID).
			Order("viewed_at desc, id desc").
			Offset(RecentlyViewedLimit).
			Find(&overflow).Error; err != nil {
			return err
		}
		for _, v := range overflow {
			if err := tx.Delete(&viewedProduct{}, v.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RecentlyViewed returns the session's history, most recent first.
//
// RecentlyViewed 返回会话的历史，最近的在前。
//
// Parameters:
//   - sessionID: The session to read
//
// Returns:
//   - []store.Product: Product snapshots, newest view first
//   - error: An error if the read fails
func (s *Store) RecentlyViewed(sessionID string) ([]store.Product, error) {
	var rows []viewedProduct
	if err := s.db.Where("session_id = ?", sessionID).
		Order("viewed_at desc, id desc").
		Limit(RecentlyViewedLimit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recently viewed: %w", err)
	}

	out := make([]store.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Product{
			ID:       r.ProductID,
			Title:    r.Title,
			Price:    r.Price,
			ImageURL: r.ImageURL,
		})
	}
	return out, nil
}
