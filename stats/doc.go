// Package stats derives aggregate statistics from normalized feed records.
// All computations are pure functions over slices; nothing here touches the
// cache or the network.
package stats
