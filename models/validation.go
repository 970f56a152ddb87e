package models

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

const (
	MaxListNameLength = 100
	MaxTodoNameLength = 200
)

const (
	listNameLengthMessage = "List names must be between 1 and 100 characters long"
	todoNameLengthMessage = "Todos must be between 1 and 200 characters long"
	duplicateNameMessage  = "That todo list name already exists"
)

var (
	ErrInvalidLength  = errors.New("invalid length")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrNotFound       = errors.New("not found")
	ErrEmptyOperation = errors.New("nothing to do")
)

// ValidationError carries the message shown to the user next to the
// sentinel error it wraps.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateListName checks the length of name and that no list other than
// editingID already uses it. Pass 0 as editingID when creating a list.
func ValidateListName(name string, lists *Lists, editingID int) error {
	if err := validateLength(name, MaxListNameLength, listNameLengthMessage); err != nil {
		return err
	}
	for _, list := range lists.ByID {
		if list.ID != editingID && list.Name == name {
			return &ValidationError{Err: ErrDuplicateName, Message: duplicateNameMessage}
		}
	}
	return nil
}

func ValidateTodoName(name string) error {
	return validateLength(name, MaxTodoNameLength, todoNameLengthMessage)
}

func validateLength(s string, limit int, msg string) error {
	n := utf8.RuneCountInString(s)
	if n < 1 || n > limit {
		return &ValidationError{Err: ErrInvalidLength, Message: msg}
	}
	return nil
}

// ParseID parses a path identifier. Only canonical non-negative decimal
// integers are accepted: no sign, no leading zeros, nothing trailing.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 || strconv.Itoa(id) != raw {
		return 0, false
	}
	return id, true
}
