// Package policy holds the item naming rules applied before an item is added to a trip.
package policy

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName      = errors.New("please enter an item name")
	ErrRestrictedItem = errors.New("this item is restricted and cannot be transported")
)

// restrictedKeywords are substrings of item names that are never allowed on a trip.
var restrictedKeywords = []string{
	"flammable",
	"explosive",
	"gas",
	"compressed gas",
	"corrosive",
	"acid",
	"battery",
	"lithium",
	"fuel",
	"petrol",
	"gasoline",
	"diesel",
	"kerosene",
	"alcohol",
	"paint thinner",
	"fireworks",
	"ammunition",
	"poison",
	"toxic",
	"radioactive",
	"mercury",
	"pesticide",
	"herbicide",
	"bleach",
	"aerosol",
	"spray paint",
	"lighter fluid",
	"matches",
	"propane",
	"butane",
}

// IsRestricted reports whether name contains a restricted keyword, ignoring case.
func IsRestricted(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, keyword := range restrictedKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

// CheckItemName validates the name of a new item.
// Edits of existing items are not checked.
func CheckItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if IsRestricted(name) {
		return ErrRestrictedItem
	}
	return nil
}
