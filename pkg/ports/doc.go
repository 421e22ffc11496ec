/*
Package ports defines the driven ports (interfaces) of the CV terminal.

These interfaces decouple the core from external implementations, so the
same engine can count command usage in memory during development or in
Redis when several replicas serve the HTTP API.

# Key Interfaces

  - UsageRecorder: Aggregates how often each command is run, across visitors.
*/
package ports
