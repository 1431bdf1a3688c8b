// Command wikichat answers queries with short Wikipedia summaries, either
// one at a time or in an interactive terminal chat.
package main

import "github.com/diogo/wikichat/internal/commands"

func main() {
	commands.Execute()
}
