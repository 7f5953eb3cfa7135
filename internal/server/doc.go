// Package server exposes the command dispatcher over HTTP.
//
// Routes:
//
//	POST /execute-command  {"command": "..."} -> {"success": bool, "message": "..."}
//	GET  /health
//	GET  /metrics
package server
