package domain

import "errors"

// Not-found sentinels map to 404 responses; handlers surface them untouched.
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrItemNotFound         = errors.New("order item not found")
	ErrTableNotFound        = errors.New("table not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrMenuCategoryNotFound = errors.New("menu category not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrPaymentNotFound      = errors.New("payment not found")

	ErrDuplicateTable = errors.New("table already exists")
	ErrDuplicateEmail = errors.New("user already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrOrderNotFound, ErrItemNotFound, ErrTableNotFound, ErrUserNotFound,
		ErrRoleNotFound, ErrMenuCategoryNotFound, ErrMenuItemNotFound, ErrPaymentNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateTable) || errors.Is(err, ErrDuplicateEmail)
}

// ValidationError communicates rule violations back to HTTP handlers as 400s.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func NewValidation(msg string) error { return ValidationError{Message: msg} }

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
