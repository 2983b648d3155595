package main

import "storefront/cmd/storefront/commands"

func main() {
	commands.Execute()
}
