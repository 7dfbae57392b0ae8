// Package feed fetches and decodes upstream transit feeds.
//
// The Fetcher performs one bounded HTTP GET per call and reports failures as
// typed FetchErrors. Decode turns the raw bytes into a Payload, a tagged
// union over the three payload classes:
//   - GTFS-RT protobuf FeedMessage (vehicle positions, trip updates, alerts)
//   - generic JSON value (events, weather)
//   - raw byte blob (static GTFS zip)
//
// Neither the fetcher nor the decoder retries or caches; refresh scheduling
// belongs to the cache layer.
package feed
