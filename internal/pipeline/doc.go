// Package pipeline orchestrates one enrichment run: compute the work
// list, confirm with the operator, classify each identifier under the
// shared rate limit, and persist the games log and packer queue.
//
// The run is strictly sequential. All remote pacing lives in the steam
// client's limiter; the pipeline only observes the interval to estimate
// duration.
package pipeline
