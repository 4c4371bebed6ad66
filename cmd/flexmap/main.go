// Command flexmap loads loosely written XML documents against YAML schemas and
// reports how their elements and attributes were mapped.
package main

import "flexmap/internal/cli"

func main() {
	cli.Execute()
}
