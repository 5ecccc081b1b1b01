package endpoints

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/relnotes/internal/docjson"
)

var ErrNotAPIDescription = errors.New("not an API description")

// httpMethods are the operation keys of an OpenAPI path item.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// Description is the subset of an OpenAPI document relnotes reads.
type Description struct {
	Title       string
	Description string
	Operations  []Operation
}

// ParseDescription reads an OpenAPI document in JSON or YAML. Operations keep
// their declaration order, which a plain map decode would lose.
func ParseDescription(data []byte) (*Description, error) {
	root, err := docjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse api description: %w", err)
	}
	return DescriptionFromNode(root)
}

// DescriptionFromNode reads an already parsed OpenAPI document.
func DescriptionFromNode(root *yaml.Node) (*Description, error) {
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, ErrNotAPIDescription
	}

	desc := &Description{}
	if info := docjson.Lookup(root, "info"); info != nil {
		desc.Title = scalarValue(info, "title")
		desc.Description = scalarValue(info, "description")
	}

	paths := docjson.Lookup(root, "paths")
	if paths == nil {
		if docjson.Lookup(root, "openapi") == nil && docjson.Lookup(root, "swagger") == nil {
			return nil, ErrNotAPIDescription
		}
		return desc, nil
	}
	if paths.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: paths is not a mapping", ErrNotAPIDescription)
	}

	for i := 0; i+1 < len(paths.Content); i += 2 {
		path, item := paths.Content[i].Value, paths.Content[i+1]
		if item.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			method := strings.ToLower(item.Content[j].Value)
			op := item.Content[j+1]
			if !httpMethods[method] || op.Kind != yaml.MappingNode {
				continue
			}
			desc.Operations = append(desc.Operations, Operation{
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: scalarValue(op, "summary"),
				Tags:    scalarSequence(docjson.Lookup(op, "tags")),
			})
		}
	}
	return desc, nil
}

// LoadIndex parses an API description and indexes it under base.
func LoadIndex(base string, data []byte) (*Index, *Description, error) {
	desc, err := ParseDescription(data)
	if err != nil {
		return nil, nil, err
	}
	return NewIndex(base, desc.Operations), desc, nil
}

func scalarValue(m *yaml.Node, key string) string {
	v := docjson.Lookup(m, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

func scalarSequence(n *yaml.Node) []string {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind == yaml.ScalarNode {
			out = append(out, c.Value)
		}
	}
	return out
}
