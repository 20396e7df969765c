package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level keys selecting the table shape.
const (
	nestedKey = "Transaction Map"
	flatKey   = "category_mapping"
)

// Load reads a rule table file and detects its shape from the top-level
// key. YAML and JSON documents both parse here (YAML is a superset).
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule table: %w", err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Parse decodes rule table bytes. Mapping key order in the document is
// the match-priority order, so decoding goes through yaml.Node instead
// of Go maps.
func Parse(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTable)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidTable)
	}

	table := &Table{}
	for i := 0; i < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case nestedKey:
			nested, err := parseNested(value)
			if err != nil {
				return nil, err
			}
			table.Nested = nested
		case flatKey:
			flat, err := parseFlat(value)
			if err != nil {
				return nil, err
			}
			table.Flat = flat
		}
	}

	switch {
	case table.Nested != nil && table.Flat != nil:
		return nil, fmt.Errorf("%w: both %q and %q present; the shapes are not mergeable",
			ErrInvalidTable, nestedKey, flatKey)
	case table.Nested == nil && table.Flat == nil:
		return nil, fmt.Errorf("%w: expected a %q or %q top-level key",
			ErrInvalidTable, nestedKey, flatKey)
	}

	if errs := Validate(table); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, errs[0])
	}
	return table, nil
}

func parseNested(node *yaml.Node) (*NestedTable, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q must be a mapping", ErrInvalidTable, nestedKey)
	}

	table := &NestedTable{}
	for i := 0; i < len(node.Content); i += 2 {
		typeKey, typeVal := node.Content[i], node.Content[i+1]
		if typeVal.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: type %q must map categories", ErrInvalidTable, typeKey.Value)
		}

		tr := TypeRules{Name: typeKey.Value}
		for j := 0; j < len(typeVal.Content); j += 2 {
			catKey, catVal := typeVal.Content[j], typeVal.Content[j+1]
			if catVal.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: category %q under type %q must map payment labels",
					ErrInvalidTable, catKey.Value, typeKey.Value)
			}

			cr := CategoryRules{Name: catKey.Value}
			for k := 0; k < len(catVal.Content); k += 2 {
				labelKey, labelVal := catVal.Content[k], catVal.Content[k+1]
				matches, err := parseMatchList(labelVal)
				if err != nil {
					return nil, fmt.Errorf("%w: label %q under %q/%q: %v",
						ErrInvalidTable, labelKey.Value, typeKey.Value, catKey.Value, err)
				}
				cr.Labels = append(cr.Labels, LabelRules{Name: labelKey.Value, Matches: matches})
			}
			tr.Categories = append(tr.Categories, cr)
		}
		table.Types = append(table.Types, tr)
	}
	return table, nil
}

func parseMatchList(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a list of match substrings")
	}
	matches := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("match substrings must be strings")
		}
		matches = append(matches, item.Value)
	}
	return matches, nil
}

func parseFlat(node *yaml.Node) (*FlatTable, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q must be a mapping", ErrInvalidTable, flatKey)
	}

	table := &FlatTable{}
	for i := 0; i < len(node.Content); i += 2 {
		typeKey, typeVal := node.Content[i], node.Content[i+1]
		if typeVal.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: type %q must map substrings to categories",
				ErrInvalidTable, typeKey.Value)
		}
		for j := 0; j < len(typeVal.Content); j += 2 {
			matchKey, catVal := typeVal.Content[j], typeVal.Content[j+1]
			if catVal.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: category for %q/%q must be a string",
					ErrInvalidTable, typeKey.Value, matchKey.Value)
			}
			table.Rules = append(table.Rules, FlatRule{
				Type:     typeKey.Value,
				Match:    matchKey.Value,
				Category: catVal.Value,
			})
		}
	}
	return table, nil
}
