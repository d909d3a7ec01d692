package enums

import "fmt"

// AccountCategory classifies an account for authorization decisions.
type AccountCategory string

const (
	AccountCategoryConsumer AccountCategory = "consumer"
	AccountCategoryVendor   AccountCategory = "vendor"
	AccountCategoryAdmin    AccountCategory = "admin"
)

var validAccountCategories = []AccountCategory{
	AccountCategoryConsumer,
	AccountCategoryVendor,
	AccountCategoryAdmin,
}

// String implements fmt.Stringer.
func (c AccountCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known AccountCategory.
func (c AccountCategory) IsValid() bool {
	for _, candidate := range validAccountCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseAccountCategory converts raw input into an AccountCategory.
func ParseAccountCategory(value string) (AccountCategory, error) {
	for _, candidate := range validAccountCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account category %q", value)
}
