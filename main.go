/*
Renders the scenes under assets/ through the engine package.
Run `wireframe run --help` for the available settings.
*/
package main

import "github.com/spaghettifunk/wireframe/cmd"

func main() {
	cmd.Execute()
}
