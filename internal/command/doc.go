// Package command parses a bot command line, routes it to the lookup
// services and renders the outcome as a Result.
//
// Every outcome, including validation and collaborator failures, is a
// Result with Success false and a human-readable Message. Messages carry a
// light HTML markup (<b>, <i>, <br>) for the rendering client; all values
// taken from user input or collaborators are HTML-escaped.
package command
