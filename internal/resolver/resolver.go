// Package resolver turns type references as written in source into fully
// qualified names using the enclosing namespace and a single-level import
// alias table.
package resolver

import "strings"

// Separator joins namespace segments.
const Separator = `\`

// ImportMap maps an alias (the first segment of a written name) to the fully
// qualified name it stands for.
type ImportMap map[string]string

// Clone returns an independent copy of m.
func (m ImportMap) Clone() ImportMap {
	out := make(ImportMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Resolve returns the fully qualified form of short.
//
// A leading separator marks an already qualified name. Otherwise the first
// segment is looked up in imports; on a miss the name is placed inside
// namespace. Alias chains are not followed.
func Resolve(short, namespace string, imports ImportMap) string {
	if short == "" {
		return short
	}
	if strings.HasPrefix(short, Separator) {
		return strings.TrimPrefix(short, Separator)
	}

	head, tail, hasTail := strings.Cut(short, Separator)
	if target, ok := imports[head]; ok {
		if hasTail && tail != "" {
			return target + Separator + tail
		}
		return target
	}

	return Qualify(namespace, short)
}

// ResolveAll resolves each name in order.
func ResolveAll(shorts []string, namespace string, imports ImportMap) []string {
	out := make([]string, len(shorts))
	for i, s := range shorts {
		out[i] = Resolve(s, namespace, imports)
	}
	return out
}

// Qualify places name inside namespace. An empty namespace is the global one.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + Separator + name
}

// ShortName returns the last segment of a qualified name.
func ShortName(name string) string {
	if i := strings.LastIndex(name, Separator); i >= 0 {
		return name[i+1:]
	}
	return name
}
