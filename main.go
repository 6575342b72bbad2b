package main

import "github.com/rootfind/rootfind/cmd/rootfind"

func main() { rootfind.Execute() }
