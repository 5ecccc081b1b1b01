package endpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersJSON = `{
  "openapi": "3.0.1",
  "info": {"title": "Admin API", "description": "Intro text.\n## Changelog\n#### 1 May 2024\nAdded orders."},
  "paths": {
    "/orders": {
      "post": {"summary": "Create order", "tags": ["Orders"]},
      "get": {"summary": "List orders", "tags": ["Orders"]},
      "parameters": []
    },
    "/orders/{id}": {
      "get": {"tags": ["Orders"]}
    }
  }
}`

const widgetsYAML = `openapi: 3.0.0
info:
  title: Widgets
paths:
  /widgets:
    get:
      summary: List widgets
      tags: [APIWidgets]
`

func TestParseDescription_JSONKeepsOrder(t *testing.T) {
	desc, err := ParseDescription([]byte(ordersJSON))
	require.NoError(t, err)

	assert.Equal(t, "Admin API", desc.Title)
	assert.Contains(t, desc.Description, "## Changelog")
	assert.Equal(t, []Operation{
		{Method: "POST", Path: "/orders", Summary: "Create order", Tags: []string{"Orders"}},
		{Method: "GET", Path: "/orders", Summary: "List orders", Tags: []string{"Orders"}},
		{Method: "GET", Path: "/orders/{id}", Tags: []string{"Orders"}},
	}, desc.Operations)
}

func TestLoadIndex_YAML(t *testing.T) {
	idx, desc, err := LoadIndex("widgets", []byte(widgetsYAML))
	require.NoError(t, err)
	assert.Equal(t, "Widgets", desc.Title)

	link, ok := idx.Link("GET /widgets")
	require.True(t, ok)
	assert.Equal(t, "/widgets/api-widgets/list-widgets", link)
}

func TestParseDescription_Errors(t *testing.T) {
	_, err := ParseDescription([]byte("- just\n- a list\n"))
	require.ErrorIs(t, err, ErrNotAPIDescription)

	_, err = ParseDescription([]byte("name: not an api\n"))
	require.ErrorIs(t, err, ErrNotAPIDescription)

	_, err = ParseDescription([]byte("{unterminated"))
	require.Error(t, err)

	desc, err := ParseDescription([]byte("openapi: 3.1.0\ninfo: {title: Empty}\n"))
	require.NoError(t, err)
	assert.Empty(t, desc.Operations)
}

func TestParseDescription_JSONEscapes(t *testing.T) {
	data := `{"openapi":"3.0.0","info":{"title":"API \ud83d\ude80"},` +
		`"paths":{"\/orders\/{id}":{"get":{"summary":"Get order","tags":["Orders"]}}}}`

	desc, err := ParseDescription([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "API \U0001F680", desc.Title)
	assert.Equal(t, []Operation{
		{Method: "GET", Path: "/orders/{id}", Summary: "Get order", Tags: []string{"Orders"}},
	}, desc.Operations)

	idx, _, err := LoadIndex("api-reference", []byte(data))
	require.NoError(t, err)
	link, ok := idx.Link("GET /orders/{id}")
	require.True(t, ok)
	assert.Equal(t, "/api-reference/orders/get-order", link)
}
