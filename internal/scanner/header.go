package scanner

import (
	"fmt"
	"strings"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/token"
)

// headerContext is the clause the header parser is currently reading.
type headerContext int

const (
	contextNone headerContext = iota
	contextExtends
	contextImplements
)

var headerTransitions = map[token.Kind]headerContext{
	token.Extends:    contextExtends,
	token.Implements: contextImplements,
}

// modifierLookback is how many significant tokens before the class keyword
// may carry a class modifier.
const modifierLookback = 2

// parseHeader reads the declaration starting at the class or interface
// keyword at index start, through the opening body brace. It returns the
// number of tokens consumed.
func parseHeader(cur token.Cursor, start int, namespace string, imports resolver.ImportMap) (ClassDescriptor, int, error) {
	keyword := cur.Get(start)
	desc := ClassDescriptor{
		IsInterface: keyword.Kind == token.Interface,
		LineStart:   keyword.Line,
	}

	prev := start - 1
	for n := 0; n < modifierLookback; n++ {
		prev = cur.PrevSignificant(prev)
		if prev < 0 {
			break
		}
		mod := cur.Get(prev)
		switch mod.Kind {
		case token.Final:
			desc.IsFinal = true
		case token.Abstract:
			desc.IsAbstract = true
		default:
			prev--
			continue
		}
		if mod.Line > 0 && (desc.LineStart == 0 || mod.Line < desc.LineStart) {
			desc.LineStart = mod.Line
		}
		prev--
	}

	nameIdx := cur.NextSignificant(start + 1)
	if nameIdx < 0 || !cur.IsKind(nameIdx, token.Identifier) {
		return ClassDescriptor{}, 0, fmt.Errorf("%w: expected name after %q", ErrMalformed, keyword.Text)
	}
	desc.ShortName = cur.Get(nameIdx).Text
	desc.Name = resolver.Qualify(namespace, desc.ShortName)

	var (
		context  = contextNone
		extends  []string
		inherits []string
		current  *strings.Builder
	)
	startEntry := func(list *[]string) {
		*list = append(*list, "")
		current = &strings.Builder{}
	}
	flush := func() {
		if current == nil {
			return
		}
		switch context {
		case contextExtends:
			extends[len(extends)-1] = current.String()
		case contextImplements:
			inherits[len(inherits)-1] = current.String()
		}
	}

	i := nameIdx + 1
	for ; ; i++ {
		tok, err := cur.At(i)
		if err != nil {
			return ClassDescriptor{}, 0, fmt.Errorf("%w: no opening brace for %s", ErrMalformed, desc.ShortName)
		}
		if tok.IsChar("{") {
			flush()
			break
		}

		if next, ok := headerTransitions[tok.Kind]; ok {
			flush()
			context = next
			if context == contextExtends {
				startEntry(&extends)
			} else {
				startEntry(&inherits)
			}
			continue
		}

		switch {
		case tok.IsChar(","):
			flush()
			switch context {
			case contextExtends:
				startEntry(&extends)
			case contextImplements:
				startEntry(&inherits)
			}
		case tok.Kind.IsName() && current != nil:
			current.WriteString(tok.Text)
		}
	}

	extends = dropEmpty(extends)
	inherits = dropEmpty(inherits)
	if desc.IsInterface {
		// An interface extends other interfaces.
		inherits = append(extends, inherits...)
	} else if len(extends) > 0 {
		desc.ShortParent = extends[0]
	}

	desc.ShortInterfaces = cloneStrings(inherits)
	desc.Interfaces = resolver.ResolveAll(desc.ShortInterfaces, namespace, imports)
	desc.Parent = resolver.Resolve(desc.ShortParent, namespace, imports)

	return desc, i - start + 1, nil
}

func dropEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
