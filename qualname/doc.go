/*
Package qualname provides a structured, type-safe representation for the
qualified names used throughout the system, based on the canonical dotted
format `a.b.c`.

A qualified name locates a sub-module, learnable parameter, or constant
tensor attribute relative to the root of a module tree, one attribute lookup
per segment. Container children are addressed by their integer position, e.g.
`encoder.layers.0`.

This package centralizes formatting and parsing of that format so that node
targets, policy overrides, and traversal results agree on one spelling.
*/
package qualname
