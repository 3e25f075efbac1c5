package main

import (
	"fmt"
)

const (
	docVersion = `Print the sslcheck version and exit`
)

type optsVersion struct{}

func (c *optsVersion) Execute(args []string) error {
	fmt.Println(Version)
	return nil
}
