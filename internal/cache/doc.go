// Package cache keeps the results of the last run so they can be
// re-rendered or reused when the inputs have not changed.
package cache
