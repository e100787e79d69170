package token

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a token dump encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a dump format from a file name, defaulting to JSON.
func DetectFormat(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Decode reads a token dump. Each element is either a bare string (a
// punctuation token) or a [kind, text, line] triple.
func Decode(r io.Reader, format Format) ([]Token, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read token dump: %w", err)
	}

	var tokens []Token
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &tokens)
	case FormatJSON, "":
		err = json.Unmarshal(data, &tokens)
	default:
		return nil, fmt.Errorf("unsupported token dump format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode token dump: %w", err)
	}
	return tokens, nil
}

// Encode writes tokens in the dump format understood by Decode.
func Encode(w io.Writer, tokens []Token, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(tokens)
	case FormatJSON, "":
		return json.NewEncoder(w).Encode(tokens)
	default:
		return fmt.Errorf("unsupported token dump format: %s", format)
	}
}

type triple struct {
	kind Kind
	text string
	line int
}

// MarshalJSON encodes bare characters as strings and the rest as triples.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.Kind == Char {
		return json.Marshal(t.Text)
	}
	return json.Marshal([]any{string(t.Kind), t.Text, t.Line})
}

// UnmarshalJSON accepts either dump element shape.
func (t *Token) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = NewChar(s)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("token must be a string or [kind, text, line]: %w", err)
	}
	var tr triple
	if len(raw) < 2 || len(raw) > 3 {
		return fmt.Errorf("token triple has %d elements", len(raw))
	}
	var kind string
	if err := json.Unmarshal(raw[0], &kind); err != nil {
		return fmt.Errorf("token kind: %w", err)
	}
	tr.kind = Kind(kind)
	if err := json.Unmarshal(raw[1], &tr.text); err != nil {
		return fmt.Errorf("token text: %w", err)
	}
	if len(raw) == 3 {
		if err := json.Unmarshal(raw[2], &tr.line); err != nil {
			return fmt.Errorf("token line: %w", err)
		}
	}
	*t = New(tr.kind, tr.text, tr.line)
	return nil
}

// MarshalYAML mirrors MarshalJSON. Triples are written in flow style with
// quoted text so whitespace survives.
func (t Token) MarshalYAML() (any, error) {
	if t.Kind == Char {
		return t.Text, nil
	}
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t.Kind)},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Text, Style: yaml.DoubleQuotedStyle},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t.Line)},
		},
	}, nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (t *Token) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = NewChar(value.Value)
		return nil
	case yaml.SequenceNode:
		if len(value.Content) < 2 || len(value.Content) > 3 {
			return fmt.Errorf("line %d: token triple has %d elements", value.Line, len(value.Content))
		}
		var tr triple
		tr.kind = Kind(value.Content[0].Value)
		tr.text = value.Content[1].Value
		if len(value.Content) == 3 {
			if err := value.Content[2].Decode(&tr.line); err != nil {
				return fmt.Errorf("line %d: token line: %w", value.Line, err)
			}
		}
		*t = New(tr.kind, tr.text, tr.line)
		return nil
	default:
		return fmt.Errorf("line %d: token must be a string or [kind, text, line]", value.Line)
	}
}
