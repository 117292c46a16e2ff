package main

import "github.com/maskpii/maskpii/cmd/maskpii"

func main() { maskpii.Execute() }
