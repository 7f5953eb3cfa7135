// Package worker runs batches of commands with bounded concurrency.
package worker
