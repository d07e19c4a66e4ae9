// Package errors provides standardized error types for the storefront.
// It defines common error values, error wrapping, and helper functions
// for error checking and handling across the storefront core.
//
// Package errors 提供店面系统的标准化错误类型。
// 它定义了常见错误值、错误包装以及用于整个店面核心的错误检查和处理的辅助函数。
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be returned by the storefront core.
// These provide consistent error types across the implementation.
//
// 店面核心可能返回的标准错误。
// 这些提供了实现中一致的错误类型。
var (
	// ErrNotFound is returned when a requested record does not exist in the remote store.
	// 当请求的记录在远程存储中不存在时返回ErrNotFound。
	ErrNotFound = errors.New("store: record not found")

	// ErrStoreUnavailable is returned when the remote store cannot be reached
	// or rejects a request for transport-level reasons.
	// 当无法访问远程存储或请求因传输层原因被拒绝时返回ErrStoreUnavailable。
	ErrStoreUnavailable = errors.New("store: remote store unavailable")

	// ErrInvalidOrder is returned when an order fails validation before submission.
	// 当订单在提交前验证失败时返回ErrInvalidOrder。
	ErrInvalidOrder = errors.New("checkout: invalid order")

	// ErrEmptyCart is returned when a cart checkout is attempted with no lines.
	// 当尝试对没有商品行的购物车结账时返回ErrEmptyCart。
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrSubmissionInFlight is returned when a checkout submission is attempted
	// while a previous submission for the same session is still outstanding.
	// 当同一会话的上一次提交仍未完成时再次尝试结账提交，返回ErrSubmissionInFlight。
	ErrSubmissionInFlight = errors.New("checkout: submission already in flight")

	// ErrUnauthorized is returned when an admin operation is attempted
	// without the admin session flag set.
	// 当未设置管理员会话标志而尝试管理员操作时返回ErrUnauthorized。
	ErrUnauthorized = errors.New("admin: not authorized")

	// ErrIncorrectCode is returned when the submitted admin code does not match the secret.
	// 当提交的管理员代码与密钥不匹配时返回ErrIncorrectCode。
	ErrIncorrectCode = errors.New("admin: incorrect code")

	// ErrInvalidStatus is returned when an order status transition is not permitted.
	// 当订单状态转换不被允许时返回ErrInvalidStatus。
	ErrInvalidStatus = errors.New("admin: invalid status transition")

	// ErrInvalidProduct is returned when a product fails validation on create.
	// 当产品在创建时验证失败时返回ErrInvalidProduct。
	ErrInvalidProduct = errors.New("admin: invalid product")
)

// OpError represents an error that occurred during a named storefront operation.
// It wraps an underlying error with the operation that caused it.
//
// OpError 表示在命名的店面操作期间发生的错误。
// 它用导致错误的操作包装底层错误。
type OpError struct {
	Op  string // The operation that failed / 失败的操作
	Err error  // The underlying error / 底层错误
}

// Error returns the error message.
// It implements the error interface.
//
// Error 返回错误消息。
// 它实现了error接口。
//
// Returns:
//   - string: The formatted error message including the operation
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

// Unwrap returns the underlying error.
// This allows errors.Is and errors.As to work with wrapped errors.
//
// Unwrap 返回底层错误。
// 这允许errors.Is和errors.As与包装的错误一起工作。
//
// Returns:
//   - error: The underlying error
func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError creates a new OpError.
// It associates an operation name with an error.
//
// NewOpError 创建一个新的OpError。
// 它将操作名称与错误关联起来。
//
// Parameters:
//   - op: The operation that failed
//   - err: The underlying error
//
// Returns:
//   - *OpError: A new operation error instance
func NewOpError(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}

// IsNotFound returns true if the error indicates that a record was not found.
//
// IsNotFound 如果错误表示未找到记录，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable returns true if the error indicates the remote store is unreachable.
//
// IsUnavailable 如果错误表示远程存储不可达，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrStoreUnavailable
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsInvalidOrder returns true if the error indicates order validation failed.
//
// IsInvalidOrder 如果错误表示订单验证失败，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrInvalidOrder or ErrEmptyCart
func IsInvalidOrder(err error) bool {
	return errors.Is(err, ErrInvalidOrder) || errors.Is(err, ErrEmptyCart)
}

// IsUnauthorized returns true if the error indicates a missing admin session.
//
// IsUnauthorized 如果错误表示缺少管理员会话，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrUnauthorized
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsSubmissionInFlight returns true if the error indicates a duplicate submission.
//
// IsSubmissionInFlight 如果错误表示重复提交，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrSubmissionInFlight
func IsSubmissionInFlight(err error) bool {
	return errors.Is(err, ErrSubmissionInFlight)
}
