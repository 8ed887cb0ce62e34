// Package typetag handles Sui account addresses and `address::module::Name` struct tags.
package typetag

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// AddressLength is the number of hex digits in a full Sui address.
const AddressLength = 64

// Tag is a fully qualified struct name, e.g. `0x2::coin::Coin`.
type Tag struct {
	// Address is always in long form (see NormalizeAddress).
	Address string
	Module  string
	Name    string
}

func (t Tag) String() string {
	if t.Address == "" || t.Module == "" || t.Name == "" {
		return ""
	}
	return t.Address + "::" + t.Module + "::" + t.Name
}

// Short renders the tag with the address trimmed of leading zeros (`0x2::coin::Coin`).
func (t Tag) Short() string {
	if t.Address == "" || t.Module == "" || t.Name == "" {
		return ""
	}
	return ShortAddress(t.Address) + "::" + t.Module + "::" + t.Name
}

var (
	hexRe   = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// NormalizeAddress returns the long, lowercase, 0x-prefixed form of a Sui address.
// `0x2`, `2` and `0x000…002` all normalize to the same 66-character string.
func NormalizeAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("address: empty")
	}
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if digits == "" || !hexRe.MatchString(digits) {
		return "", fmt.Errorf("address: invalid %q", s)
	}
	if len(digits) > AddressLength {
		return "", fmt.Errorf("address: %q longer than %d hex digits", s, AddressLength)
	}
	return "0x" + strings.Repeat("0", AddressLength-len(digits)) + strings.ToLower(digits), nil
}

// IsAddress reports whether s is a syntactically valid address.
func IsAddress(s string) bool {
	_, err := NormalizeAddress(s)
	return err == nil
}

// ShortAddress trims leading zeros from a normalized address, keeping at least one digit.
// Inputs that are not addresses are returned unchanged.
func ShortAddress(s string) string {
	long, err := NormalizeAddress(s)
	if err != nil {
		return s
	}
	digits := strings.TrimLeft(long[2:], "0")
	if digits == "" {
		digits = "0"
	}
	return "0x" + digits
}

// Parse parses `address::module::Name` and normalizes the address.
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tag{}, errors.New("type tag: empty")
	}
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return Tag{}, fmt.Errorf("type tag: invalid %q", s)
	}
	addr, err := NormalizeAddress(parts[0])
	if err != nil {
		return Tag{}, fmt.Errorf("type tag %q: %w", s, err)
	}
	if !identRe.MatchString(parts[1]) || !identRe.MatchString(parts[2]) {
		return Tag{}, fmt.Errorf("type tag: invalid %q", s)
	}
	return Tag{Address: addr, Module: parts[1], Name: parts[2]}, nil
}

// Normalize parses a tag and returns its long form.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}
