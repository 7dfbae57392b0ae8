// Package records defines the canonical, feed-independent record shapes the
// query layer serves.
//
// Optional fields are pointers so "absent upstream" survives serialization;
// arrival and departure delays are the one deliberate exception and default
// to 0 when the feed omits them.
package records
