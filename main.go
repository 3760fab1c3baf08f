// Lyra is a CLI music library manager.
// It initializes and executes the root command defined in the cmd package.
package main

import "github.com/lyra-player/lyra/cmd"

func main() {
	cmd.Execute()
}
