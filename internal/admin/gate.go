// Package admin implements the password-gated admin side of the storefront:
// the shared-secret gate and the product and order management operations.
// The gate is deliberately minimal — one fixed secret, one persisted boolean
// flag, no tokens, no expiry, no lockout — reproducing exactly the guarantee
// the shop runs with, and nothing stronger.
//
// Package admin 实现店面的密码门禁管理端：共享密钥门禁以及产品和订单管理操作。
// 门禁刻意保持最小化——一个固定密钥、一个持久化布尔标志、无令牌、无过期、无锁定——
// 精确复现店铺运行的保证，不多不少。
package admin

import pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"

// FlagStore persists the admin-authenticated flag.
//
// FlagStore 持久化管理员已认证标志。
type FlagStore interface {
	// SetAdminAuthenticated writes the flag.
	// SetAdminAuthenticated 写入标志。
	SetAdminAuthenticated(authenticated bool) error

	// IsAdminAuthenticated reads the flag; a missing flag reads as false.
	// IsAdminAuthenticated 读取标志；缺少标志时读取为false。
	IsAdminAuthenticated() (bool, error)
}

// Gate checks a submitted code against the fixed admin secret and keeps the
// resulting session flag. Route guards read the flag to admit admin views.
//
// Gate 将提交的代码与固定管理员密钥比较，并保存由此产生的会话标志。
// 路由守卫读取该标志以放行管理员视图。
type Gate struct {
	secret string
	flags  FlagStore
}

// NewGate creates an admin gate with the given secret.
//
// NewGate 使用给定的密钥创建管理员门禁。
//
// Parameters:
//   - secret: The fixed admin code
//   - flags: Where the session flag is persisted
//
// Returns:
//   - *Gate: A new gate instance
func NewGate(secret string, flags FlagStore) *Gate {
	return &Gate{secret: secret, flags: flags}
}

// Login compares the submitted code to the secret. On match the flag becomes
// true; on mismatch it stays false and ErrIncorrectCode is returned for the
// user-visible "incorrect code" signal. No lockout, no attempt counting.
//
// Login 将提交的代码与密钥比较。匹配时标志变为true；不匹配时标志保持false，
// 并返回ErrIncorrectCode作为用户可见的"代码错误"信号。无锁定、无尝试计数。
//
// Parameters:
//   - code: The submitted admin code
//
// Returns:
//   - error: ErrIncorrectCode on mismatch, or a flag persistence error
func (g *Gate) Login(code string) error {
	if code != g.secret {
		return pkgerrors.ErrIncorrectCode
	}
	return g.flags.SetAdminAuthenticated(true)
}

// Logout clears the session flag.
//
// Logout 清除会话标志。
//
// Returns:
//   - error: A flag persistence error, if any
func (g *Gate) Logout() error {
	return g.flags.SetAdminAuthenticated(false)
}

// IsAuthenticated reads the session flag. A read failure reads as not
// authenticated: the guard fails closed.
//
// IsAuthenticated 读取会话标志。读取失败视为未认证：守卫在故障时关闭。
//
// Returns:
//   - bool: True when the admin session flag is set
func (g *Gate) IsAuthenticated() bool {
	authed, err := g.flags.IsAdminAuthenticated()
	if err != nil {
		return false
	}
	return authed
}
