// Package ratelimit paces outbound Steam API calls.
//
// Every request in the process shares one Limiter, so the minimum interval
// holds across the app-list, library, and appdetails endpoints alike. The
// interval is measured between call starts: the limiter stamps the clock
// after its wait and before the network call, keeping throughput bounded
// regardless of how long the remote takes to answer.
package ratelimit
