// Package access defines the roles known to the API and the role sets that
// guard routes.
package access

import (
	"fmt"
	"strings"
)

// Role is the value carried in the token "role" claim.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleReader Role = "Reader"
	// RoleUser chỉ còn trong policy cũ, account mới không được gán role này
	RoleUser Role = "User"
)

var knownRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleReader: true,
	RoleUser:   true,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return knownRoles[r]
}

// Assignable reports whether an account may be registered with r.
func (r Role) Assignable() bool {
	return r == RoleAdmin || r == RoleReader
}

func (r Role) String() string {
	return string(r)
}

// RoleSet is the set of roles allowed on a route. An empty set means any
// authenticated caller is allowed.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// ParseRoles parses a comma separated declaration such as "Admin, Reader,User".
// Entries are trimmed; empty entries are skipped. Names are case sensitive.
func ParseRoles(decl string) (RoleSet, error) {
	var roles []Role
	for _, part := range strings.Split(decl, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		r := Role(name)
		if !r.Valid() {
			return nil, fmt.Errorf("unknown role %q in %q", name, decl)
		}
		roles = append(roles, r)
	}
	return NewRoleSet(roles...), nil
}

// MustParseRoles is ParseRoles for route setup; it panics on unknown roles.
func MustParseRoles(decl string) RoleSet {
	s, err := ParseRoles(decl)
	if err != nil {
		panic(err)
	}
	return s
}

// Allows reports whether role satisfies the set. The comparison is exact.
func (s RoleSet) Allows(role string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[Role(role)]
	return ok
}
