// Package cache holds the last good payload of every (network, feed kind)
// pair and decides when to refetch.
//
// Each entry moves through three states: Empty (never fetched), Fresh
// (younger than the freshness window) and Stale (older, but still present).
// A Get on a Fresh entry costs no I/O. A Get on a Stale or Empty entry
// triggers one refresh through the injected Loader; concurrent Gets for the
// same key collapse into that single flight. When the refresh fails the last
// good payload keeps being served — an entry is only ever replaced by a
// successful load, never cleared by a failure.
package cache
