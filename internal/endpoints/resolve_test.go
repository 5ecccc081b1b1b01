package endpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Tiers(t *testing.T) {
	idx := NewIndex("api", []Operation{
		{Method: "GET", Path: "/orders/{id}", Summary: "Get order", Tags: []string{"Orders"}},
		{Method: "GET", Path: "/orders", Summary: "List orders", Tags: []string{"Orders"}},
		{Method: "PUT", Path: "/customers/{customerId}", Summary: "Update customer", Tags: []string{"Customers"}},
		{Method: "GET", Path: "/v2/widgets/{uuid}", Summary: "Get widget", Tags: []string{"Widgets"}},
	})

	tests := []struct {
		name     string
		method   string
		path     string
		wantLink string
		wantTier Tier
	}{
		{"exact", "GET", "/orders/{id}", "/api/orders/get-order", TierExact},
		{"lower-case method", "get", "/orders", "/api/orders/list-orders", TierExact},
		{"version stripped", "GET", "/v1/orders/{id}", "/api/orders/get-order", TierVersionStripped},
		{"bare version", "GET", "/v3/orders", "/api/orders/list-orders", TierVersionStripped},
		{"placeholder", "PUT", "/customers", "/api/customers/update-customer", TierPlaceholder},
		{"placeholder trailing slash", "PUT", "/customers/", "/api/customers/update-customer", TierPlaceholder},
		{"placeholder after version strip", "GET", "/v1/orders", "/api/orders/list-orders", TierVersionStripped},
		{"placeholder on versioned path", "GET", "/v2/widgets", "/api/widgets/get-widget", TierPlaceholder},
		{"placeholder on stripped path", "PUT", "/v9/customers", "/api/customers/update-customer", TierPlaceholder},
		{"method matters", "DELETE", "/orders/{id}", "", TierUnresolved},
		{"unknown", "GET", "/unknown/path", "", TierUnresolved},
		{"version-like segment not stripped", "GET", "/vip/orders", "", TierUnresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, tier := NewResolver(idx).Resolve(tt.method, tt.path)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantLink, link)
		})
	}
}

func TestResolver_CustomSuffixesAndObserver(t *testing.T) {
	idx := NewIndex("api", []Operation{{Method: "GET", Path: "/tickets/{ticketId}", Summary: "Get ticket"}})

	var seen []Tier
	r := NewResolver(idx,
		WithPlaceholderSuffixes([]string{"/{ticketId}"}),
		WithObserver(func(t Tier) { seen = append(seen, t) }),
	)

	link, tier := r.Resolve("GET", "/tickets")
	assert.Equal(t, TierPlaceholder, tier)
	assert.Equal(t, "/api/get-ticket", link)

	_, tier = NewResolver(idx).Resolve("GET", "/tickets")
	assert.Equal(t, TierUnresolved, tier, "default suffixes do not include ticketId")

	r.Resolve("GET", "/nothing")
	assert.Equal(t, []Tier{TierPlaceholder, TierUnresolved}, seen)
}

func TestResolver_NilLookup(t *testing.T) {
	_, tier := NewResolver(nil).Resolve("GET", "/x")
	assert.Equal(t, TierUnresolved, tier)
}
