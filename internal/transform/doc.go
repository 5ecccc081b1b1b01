// Package transform rewrites change-log Markdown into Mintlify MDX.
//
// Fenced code is passed through untouched. Prose runs through a fixed
// sequence of stages (see Transformer.Stages) and is then handed to an
// optional endpoint Linker.
package transform
