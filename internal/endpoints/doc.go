// Package endpoints maps HTTP operations declared in an API description to
// documentation page links, and rewrites prose mentions such as
// "GET /v1/orders/{id}" into links to those pages.
package endpoints
