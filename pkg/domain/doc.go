/*
Package domain contains the core domain models of the CV terminal.

It defines the vocabulary shared by every other package: the structured output
lines a command produces, the transcript entries a session accumulates, and the
outcomes a dispatch can have. This package is kept pure and free of external
dependencies like I/O or timers.

# Key Entities

  - Span: A tagged piece of output (plain text, a command reference or an external link).
  - Line: An ordered sequence of spans rendered on a single row.
  - CommandDefinition: The immutable description and output of a registered command.
  - Entry: One transcript record, the typed command plus its output.
  - Outcome: What a dispatch did (noop, found, not found, clear, exit).
*/
package domain
