/*
Package observability provides tools for monitoring the CV terminal.

It includes Prometheus metrics for dispatched commands, boot progress and
HTTP requests, and a builder that turns them (plus a usage recorder and a
structured logger) into lifecycle hooks the engine calls on every event.
*/
package observability
