package endpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ordersResolver() *Resolver {
	return NewResolver(NewIndex("api-reference", []Operation{
		{Method: "GET", Path: "/orders/{id}", Summary: "Get order", Tags: []string{"Orders"}},
		{Method: "POST", Path: "/orders", Summary: "Create order", Tags: []string{"Orders"}},
	}))
}

func TestLinkify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "backticked version-stripped reference",
			in:   "Use `GET /v1/orders/{id}` to fetch.",
			want: "Use [`GET /v1/orders/{id}`](/api-reference/orders/get-order) to fetch.",
		},
		{
			name: "escaped braces inside code span",
			in:   "Use `GET /v1/orders/\\{id\\}` to fetch.",
			want: "Use [`GET /v1/orders/{id}`](/api-reference/orders/get-order) to fetch.",
		},
		{
			name: "escaped braces outside code span",
			in:   "Use GET /v1/orders/\\{id\\} to fetch.",
			want: "Use [GET /v1/orders/\\{id\\}](/api-reference/orders/get-order) to fetch.",
		},
		{
			name: "bare reference with trailing period",
			in:   "Call POST /orders.",
			want: "Call [POST /orders](/api-reference/orders/create-order).",
		},
		{
			name: "placeholder fallback",
			in:   "GET /orders now returns totals",
			want: "[GET /orders](/api-reference/orders/get-order) now returns totals",
		},
		{
			name: "unknown reference untouched",
			in:   "GET /unknown/path",
			want: "GET /unknown/path",
		},
		{
			name: "already linked",
			in:   "[`POST /orders`](/elsewhere)",
			want: "[`POST /orders`](/elsewhere)",
		},
		{
			name: "lower-case verb is prose",
			in:   "we get /orders from the cache",
			want: "we get /orders from the cache",
		},
		{
			name: "multiple references",
			in:   "POST /orders then `GET /orders/{id}`",
			want: "[POST /orders](/api-reference/orders/create-order) then [`GET /orders/{id}`](/api-reference/orders/get-order)",
		},
		{
			name: "unpaired backtick kept outside",
			in:   "`GET /orders/{id}.`",
			want: "`[GET /orders/{id}](/api-reference/orders/get-order).`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ordersResolver().Linkify(tt.in))
		})
	}
}

func TestLinkify_Idempotent(t *testing.T) {
	r := ordersResolver()
	once := r.Linkify("See `GET /v1/orders/{id}` and POST /orders.")
	assert.Equal(t, once, r.Linkify(once))
}
