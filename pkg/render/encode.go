package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/umputun/swbrowse/pkg/browser"
	"github.com/umputun/swbrowse/pkg/swapi"
)

// output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// PeopleView is the structured form of a people page.
type PeopleView struct {
	Range   browser.Range  `json:"range" yaml:"range"`
	Results []swapi.Person `json:"results" yaml:"results"`
}

// PersonView is the structured form of a person with films.
type PersonView struct {
	Person swapi.Person `json:"person" yaml:"person"`
	Films  []swapi.Film `json:"films" yaml:"films"`
}

// Encode writes v to w as indented JSON or YAML.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close yaml encoder: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}
