/*
Package content turns a résumé document into the command registry.

A résumé is a YAML document describing the person (name, title, about
paragraphs, contact links, experience, skills, education and projects).
BuildRegistry renders that document into the pre-authored output of every
command, turning whole-word command names into clickable command spans and
URLs into link spans.

A default document is embedded so the terminal works out of the box.
*/
package content
