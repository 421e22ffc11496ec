/*
Package typing animates scripted commands as if they were typed by hand.

An Animator reveals a command one character at a time into a placeholder
transcript entry, waits a short settle delay and then fills in the command
output. Boot runs the start-up script: a banner entry followed by a fixed
list of animated commands, after which the session becomes ready for input.

All waiting goes through a Sleeper that honours context cancellation, and
every step checks both the caller context and the session context, so a
closed session is never mutated by a late animation.
*/
package typing
