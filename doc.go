/*
Package cvterm is an interactive résumé presented as a simulated shell session.

A visitor types commands such as whoami, skills or contact and receives
pre-authored output. On start a short boot sequence types whoami and help by
itself, character by character, before handing the prompt to the visitor.

# Concept

The résumé is plain data (a YAML document). It is rendered once into an
immutable command registry. Each visitor gets a Session that owns its
transcript, its pending input and its timers. The Engine ties these together
and is shared by every surface: the full-screen terminal UI, the plain line
runner, the HTTP API and the MCP server.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/cvterm"
	)

	func main() {
		engine, err := cvterm.New()
		if err != nil {
			log.Fatal(err)
		}

		s := engine.NewSession(context.Background())
		defer s.Close()

		if _, err := engine.Execute(context.Background(), s, "whoami"); err != nil {
			log.Fatal(err)
		}
		fmt.Print(engine.RenderTranscript(s))
	}

# Output

Command output is a list of lines made of tagged spans: plain text, command
references (clickable, they run the named command) and external links.
Because output is structured, echoed user input is never interpreted as
markup or as a command reference.

# Exit

The exit command prints a farewell and asks the session to terminate after
a short delay. What termination means is up to the host: the terminal UI
quits, the HTTP and MCP adapters only report the delay.
*/
package cvterm
