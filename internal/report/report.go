// Package report renders scanned class structure for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/QTest-hq/classscan/internal/scanner"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Report is the structure of one class.
type Report struct {
	ID         string     `json:"id" yaml:"id"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
	Namespace  string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name       string     `json:"name" yaml:"name"`
	ShortName  string     `json:"short_name" yaml:"short_name"`
	Kind       string     `json:"kind" yaml:"kind"`
	Final      bool       `json:"final,omitempty" yaml:"final,omitempty"`
	Abstract   bool       `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Parent     string     `json:"parent,omitempty" yaml:"parent,omitempty"`
	Interfaces []string   `json:"interfaces" yaml:"interfaces"`
	Constants  []Constant `json:"constants" yaml:"constants"`
	Properties []Property `json:"properties" yaml:"properties"`
	Methods    []Method   `json:"methods" yaml:"methods"`
	Line       int        `json:"line,omitempty" yaml:"line,omitempty"`
}

// Constant describes a class constant.
type Constant struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Line  int    `json:"line" yaml:"line"`
}

// Property describes a property declaration.
type Property struct {
	Name       string `json:"name" yaml:"name"`
	Visibility string `json:"visibility" yaml:"visibility"`
	Static     bool   `json:"static,omitempty" yaml:"static,omitempty"`
	Default    string `json:"default,omitempty" yaml:"default,omitempty"`
	Line       int    `json:"line" yaml:"line"`
}

// Method describes a method declaration.
type Method struct {
	Name       string   `json:"name" yaml:"name"`
	Visibility string   `json:"visibility" yaml:"visibility"`
	Static     bool     `json:"static,omitempty" yaml:"static,omitempty"`
	Abstract   bool     `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Final      bool     `json:"final,omitempty" yaml:"final,omitempty"`
	Parameters []string `json:"parameters" yaml:"parameters"`
	Signature  string   `json:"signature" yaml:"signature"`
	LineStart  int      `json:"line_start" yaml:"line_start"`
	LineEnd    int      `json:"line_end" yaml:"line_end"`
}

// Build runs the scanner and collects its answers into a Report.
func Build(s *scanner.ClassScanner, source string) (*Report, error) {
	desc, err := s.Descriptor()
	if err != nil {
		return nil, err
	}
	members, err := s.Members()
	if err != nil {
		return nil, err
	}

	r := &Report{
		ID:         uuid.NewString(),
		Source:     source,
		Namespace:  s.Namespace(),
		Name:       desc.Name,
		ShortName:  desc.ShortName,
		Kind:       "class",
		Final:      desc.IsFinal,
		Abstract:   desc.IsAbstract,
		Parent:     desc.Parent,
		Interfaces: desc.Interfaces,
		Constants:  []Constant{},
		Properties: []Property{},
		Methods:    []Method{},
		Line:       desc.LineStart,
	}
	if desc.IsInterface {
		r.Kind = "interface"
	}

	for i, m := range members {
		switch m.Kind {
		case scanner.KindConstant:
			r.Constants = append(r.Constants, Constant{Name: m.Name, Value: m.Value, Line: m.LineStart})

		case scanner.KindProperty:
			p, err := s.Property(scanner.ByIndex(i))
			if err != nil {
				return nil, err
			}
			def, _ := p.Default()
			r.Properties = append(r.Properties, Property{
				Name:       m.Name,
				Visibility: m.Modifiers.EffectiveVisibility(),
				Static:     m.Modifiers.Static,
				Default:    def,
				Line:       m.LineStart,
			})

		case scanner.KindMethod:
			sig, err := scanner.MethodWith[*scanner.Signature](s, scanner.ByIndex(i), scanner.NewSignature)
			if err != nil {
				return nil, err
			}
			r.Methods = append(r.Methods, Method{
				Name:       m.Name,
				Visibility: m.Modifiers.EffectiveVisibility(),
				Static:     m.Modifiers.Static,
				Abstract:   m.Modifiers.Abstract || desc.IsInterface,
				Final:      m.Modifiers.Final,
				Parameters: sig.Parameters(),
				Signature:  sig.String(),
				LineStart:  m.LineStart,
				LineEnd:    m.LineEnd,
			})
		}
	}

	return r, nil
}

// Render writes reports in the requested format.
func Render(w io.Writer, reports []*Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(reports)
	case FormatText, "":
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			renderText(w, r)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderText(w io.Writer, r *Report) {
	var mods []string
	if r.Final {
		mods = append(mods, "final")
	}
	if r.Abstract {
		mods = append(mods, "abstract")
	}
	mods = append(mods, r.Kind)

	fmt.Fprintf(w, "%s %s", strings.Join(mods, " "), r.Name)
	if r.Line > 0 {
		fmt.Fprintf(w, " [line %d]", r.Line)
	}
	fmt.Fprintln(w)
	if r.Parent != "" {
		fmt.Fprintf(w, "  extends %s\n", r.Parent)
	}
	if len(r.Interfaces) > 0 {
		fmt.Fprintf(w, "  implements %s\n", strings.Join(r.Interfaces, ", "))
	}

	if len(r.Constants) > 0 {
		fmt.Fprintf(w, "  Constants: %d\n", len(r.Constants))
		for _, c := range r.Constants {
			fmt.Fprintf(w, "    %s = %s\n", c.Name, c.Value)
		}
	}
	if len(r.Properties) > 0 {
		fmt.Fprintf(w, "  Properties: %d\n", len(r.Properties))
		for _, p := range r.Properties {
			static := ""
			if p.Static {
				static = " static"
			}
			fmt.Fprintf(w, "    %s%s $%s", p.Visibility, static, p.Name)
			if p.Default != "" {
				fmt.Fprintf(w, " = %s", p.Default)
			}
			fmt.Fprintln(w)
		}
	}
	if len(r.Methods) > 0 {
		fmt.Fprintf(w, "  Methods: %d\n", len(r.Methods))
		for i, m := range r.Methods {
			fmt.Fprintf(w, "    %d. %s [lines %d-%d]\n", i+1, m.Signature, m.LineStart, m.LineEnd)
		}
	}
}
