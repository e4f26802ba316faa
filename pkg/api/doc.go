// Package api serves the current asteroid dataset over HTTP.
//
// Routes (all JSON):
//
//	GET  /healthz                              store state and snapshot ID
//	GET  /api/v1/dataset                       dataset summary
//	GET  /api/v1/observations/by-date          observations grouped by date
//	GET  /api/v1/observations/size-categories  observations by size category
//	GET  /api/v1/observations/top?metric=&n=   top n by metric (n defaults to 10)
//	GET  /api/v1/stats/{metric}                summary statistics
//	GET  /api/v1/daily                         per-date hazard counts
//	GET  /api/v1/views                         chart catalog
//	GET  /api/v1/views/{id}                    chart data
//	POST /api/v1/refresh                       fetch and swap a fresh dataset
//
// Dataset routes answer 503 with code NO_DATA until the first load succeeds.
// Their ETag is the snapshot ID, so clients can revalidate cheaply across
// refreshes.
package api
