// Package classify derives the platform/DRM summary for one identifier
// from its store detail record.
//
// Classification never fails: transport errors, timeouts, and malformed or
// unsuccessful detail responses all degrade to the Unknown classification
// so a single bad item cannot abort a long run.
package classify
