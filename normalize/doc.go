// Package normalize flattens decoded feed payloads into canonical records.
//
// Every function here is pure: the same payload always yields the same
// record sequence, in feed order. Nothing is fetched, cached, or validated
// across feeds — that is the cache's and the query layer's business.
package normalize
