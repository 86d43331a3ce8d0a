package handlers

import (
	"strconv"

	"github.com/kurrle/espresso-helper/internal/errors"
	"github.com/kurrle/espresso-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService interfaces.UserServiceInterface
	BeanSvc     interfaces.BeanServiceInterface
	ShotSvc     interfaces.ShotServiceInterface
	AdviceSvc   interfaces.AdviceServiceInterface
	AISvc       interfaces.AIServiceInterface
}

// shotsPageSize keeps shot list messages readable in chat.
const shotsPageSize = 5

// tempUint restores a numeric id from the state manager. The Redis-backed
// manager round-trips values through JSON, so numbers come back as float64.
func tempUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

// friendlyError maps service errors to user-facing messages. Not-found and
// permission failures are surfaced as-is; internals stay hidden.
func friendlyError(err error) string {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeValidation:
		var appErr *errors.AppError
		if e, ok := err.(*errors.AppError); ok {
			appErr = e
		}
		if appErr != nil {
			return "⚠️ " + appErr.Message
		}
		return "⚠️ Invalid input."
	case errors.ErrorTypeNotFound:
		return "🔍 That record no longer exists."
	case errors.ErrorTypePermission:
		return "🚫 That record belongs to another user."
	case errors.ErrorTypeAuthentication:
		return "🚫 Could not identify you. Try /start again."
	default:
		return "❌ Something went wrong. Please try again."
	}
}
