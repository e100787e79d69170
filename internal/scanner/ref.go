package scanner

import "fmt"

// MemberRef selects a member either by name or by its position in the
// member list.
type MemberRef interface {
	locate(members []MemberInfo, kind MemberKind) (int, error)
}

// ByName selects the first member of the requested kind with this exact name.
type ByName string

// ByIndex selects the member at this position in the full member list.
type ByIndex int

func (n ByName) locate(members []MemberInfo, kind MemberKind) (int, error) {
	for i, m := range members {
		if m.Kind == kind && m.Name == string(n) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s %q", ErrNotFound, kind, string(n))
}

func (x ByIndex) locate(members []MemberInfo, kind MemberKind) (int, error) {
	i := int(x)
	if i < 0 || i >= len(members) {
		return -1, fmt.Errorf("%w: index %d out of range (%d members)", ErrInvalidArgument, i, len(members))
	}
	if members[i].Kind != kind {
		return -1, fmt.Errorf("%w: index %d is a %s, not a %s", ErrInvalidArgument, i, members[i].Kind, kind)
	}
	return i, nil
}
