// Package nasa is a client for the NASA NeoWs (Near Earth Object Web Service)
// feed endpoint.
//
// [Client.FetchFeed] downloads the raw feed for a date range of at most
// seven days; [Normalize] flattens it into [neo.Observation] values, one per
// object per feed date, using the first close-approach record for velocity
// and miss distance.
//
//	c := nasa.NewClient(backend, 24*time.Hour, "DEMO_KEY")
//	feed, err := c.FetchFeed(ctx, "2024-01-01", "2024-01-08", false)
//	obs, err := nasa.Normalize(feed)
package nasa
