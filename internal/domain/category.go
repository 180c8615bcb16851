package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory indicates that the value is not one of the supported account categories.
var ErrInvalidCategory = errors.New("invalid account category")

// Category is the fixed kind of an account. It is stored and transferred by name.
type Category string

// Supported account categories.
const (
	Current Category = "CURRENT"
	Savings Category = "SAVINGS"
)

// SupportedCategories holds all the supported categories.
var SupportedCategories = []Category{
	Current,
	Savings,
}

var displayLabels = map[Category]string{
	Current: "Courant",
	Savings: "Epargne",
}

// ParseCategory returns the category with the given name, ignoring case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}

	return c, nil
}

// Valid returns true if the category is supported.
func (c Category) Valid() bool {
	_, ok := displayLabels[c]
	return ok
}

// DisplayLabel returns the human readable name of the category.
func (c Category) DisplayLabel() string {
	return displayLabels[c]
}

// IsSavings reports whether c is the savings category.
func (c Category) IsSavings() bool {
	return c == Savings
}

// IsCurrent reports whether c is the current account category.
func (c Category) IsCurrent() bool {
	return c == Current
}

func (c Category) String() string {
	return string(c)
}

// Value implements driver.Valuer.
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}

	return string(c), nil
}

// Scan implements sql.Scanner.
func (c *Category) Scan(src any) error {
	var s string

	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidCategory, src)
	}

	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
