package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/slotparse/internal/model"
	"github.com/ppiankov/slotparse/internal/slot"
)

// Format is an output encoding
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an output format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, jsonl or yaml)", name)
	}
}

// Renderer writes responses and values
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer; pretty indents JSON documents
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// RenderResponses writes batch responses: an array for json, one line per
// response for jsonl, a sequence for yaml
func (r *Renderer) RenderResponses(w io.Writer, format Format, responses []model.Response) error {
	if format == FormatJSONL {
		return r.lines(w, len(responses), func(i int) any { return responses[i] })
	}
	return r.document(w, format, responses)
}

// RenderValues writes the values of a single parse
func (r *Renderer) RenderValues(w io.Writer, format Format, values []slot.Value) error {
	if values == nil {
		values = []slot.Value{}
	}
	if format == FormatJSONL {
		return r.lines(w, len(values), func(i int) any { return values[i] })
	}
	return r.document(w, format, values)
}

// RenderResponse writes one response as a single JSON line
func (r *Renderer) RenderResponse(w io.Writer, resp model.Response) error {
	return r.lines(w, 1, func(int) any { return resp })
}

func (r *Renderer) lines(w io.Writer, n int, item func(int) any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := 0; i < n; i++ {
		if err := enc.Encode(item(i)); err != nil {
			return fmt.Errorf("encode json line: %w", err)
		}
	}
	return nil
}

func (r *Renderer) document(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if r.pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		// go through JSON so values keep their kind tags and field names
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
