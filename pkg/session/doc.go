/*
Package session implements the transcript of a single visitor session.

A Session owns the ordered list of transcript entries, the pending input
line and the boot phase. Every mutation is serialised and published to
subscribers as a Change, which is how views learn they need to redraw.

Sessions also own their timers. Close cancels the session context, stops
every pending timer and turns later mutations into ErrSessionClosed, so a
torn-down view can never be written to by a late animation or exit timer.
*/
package session
