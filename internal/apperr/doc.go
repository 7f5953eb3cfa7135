// Package apperr defines shared error sentinels for lookup-bot.
// It is a leaf package with no internal imports so that any package,
// including the resolver and HTTP plumbing, can wrap the sentinels
// without creating import cycles.
package apperr
