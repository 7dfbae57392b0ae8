// Package registry maps transit networks to their upstream feed locations.
//
// A network (e.g. "bibus") exposes a fixed set of feed kinds, each with a
// source URL. Not every network carries every kind; looking up a pair that
// is not configured returns a typed NotConfiguredError rather than an empty
// URL, so callers can distinguish "unsupported" from "temporarily down".
package registry
