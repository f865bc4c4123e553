package main

import "github.com/pathwarden/pathwarden/cmd/pathwarden"

func main() { pathwarden.Execute() }
