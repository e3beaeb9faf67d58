package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// ExtractionResult holds the structured fields returned by the backend, in
// response order. Keys are unique; insertion order drives display order.
type ExtractionResult struct {
	Fields []ExtractedField
}

// ExtractedField is one extracted key/value pair. A nil Value (JSON null or
// an empty string) means "not available" and renders distinctly from any
// real value.
type ExtractedField struct {
	Name  string
	Value *string
}

// UnmarshalJSON decodes a flat JSON object while preserving key order, which
// map-based decoding would lose. Duplicate keys keep the first occurrence.
func (r *ExtractionResult) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode extraction: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode extraction: expected object, got %v", tok)
	}

	seen := make(map[string]struct{})
	fields := []ExtractedField{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode extraction key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode extraction: non-string key %v", keyTok)
		}

		value, err := scalarToken(dec)
		if err != nil {
			return fmt.Errorf("decode extraction value for %q: %w", key, err)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fields = append(fields, ExtractedField{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode extraction close: %w", err)
	}

	r.Fields = fields
	return nil
}

// scalarToken reads one value token. The contract promises scalars only; a
// nested object or array is drained and treated as unavailable.
func scalarToken(dec *json.Decoder) (*string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return &v, nil
	case json.Number:
		s := v.String()
		return &s, nil
	case bool:
		s := "false"
		if v {
			s = "true"
		}
		return &s, nil
	case json.Delim:
		if err := drainValue(dec); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported token %v", tok)
	}
}

func drainValue(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// DisplayName converts the snake-joined key to a human title, purely for
// rendering; the underlying key is never mutated.
func (f ExtractedField) DisplayName() string {
	words := strings.Split(f.Name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// NotAvailable is the rendering of a null or empty extracted value.
const NotAvailable = "Not available"

// DisplayValue renders the value in its plain string form, or NotAvailable
// when the backend reported none.
func (f ExtractedField) DisplayValue() string {
	if f.Value == nil || *f.Value == "" {
		return NotAvailable
	}
	return *f.Value
}
