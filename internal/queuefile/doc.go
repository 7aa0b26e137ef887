// Package queuefile writes the packer queue consumed by the external
// packaging tool.
//
// Unlike the games log, the queue file is not cumulative: it is fully
// rewritten each run and reflects only that run's eligible items. When a
// run produces no eligible items the previous queue file is left untouched.
package queuefile
