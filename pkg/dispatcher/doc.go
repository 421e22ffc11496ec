/*
Package dispatcher resolves typed input against the command registry and
applies the result to a session.

Dispatch never fails on user input: empty input is ignored, unknown input
becomes an ordinary "not found" transcript entry, and the clear and exit
control commands are handled structurally instead of through the registry.
The echoed input of a not-found entry is carried as a plain text span, so
it is never interpreted as a command reference or markup.
*/
package dispatcher
