package normalize

import "strings"

// Function visibilities in the bytecode string domain.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityFriend  = "friend"
)

// RPCVisibilityToString maps the RPC visibility enumeration ("Public", "Private", "Friend")
// into the bytecode string domain. ok is false for anything else.
func RPCVisibilityToString(v any) (vis string, ok bool) {
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case VisibilityPublic:
		return VisibilityPublic, true
	case VisibilityPrivate:
		return VisibilityPrivate, true
	case VisibilityFriend:
		return VisibilityFriend, true
	default:
		return "", false
	}
}
