package tonaddr

import (
	"fmt"

	"github.com/xssnick/tonutils-go/address"
)

// ParseAny accepts both friendly (EQ.../UQ...) and raw (0:hex) forms.
func ParseAny(s string) (*address.Address, error) {
	if addr, err := address.ParseAddr(s); err == nil {
		return addr, nil
	}
	addr, err := address.ParseRawAddr(s)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", s, err)
	}
	return addr, nil
}

// Normalize returns the bounceable friendly form, the canonical
// representation stored in the database.
func Normalize(s string) (string, error) {
	addr, err := ParseAny(s)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// Equal reports whether two strings refer to the same account,
// regardless of representation.
func Equal(a, b string) bool {
	pa, err := ParseAny(a)
	if err != nil {
		return false
	}
	pb, err := ParseAny(b)
	if err != nil {
		return false
	}
	return pa.String() == pb.String()
}
