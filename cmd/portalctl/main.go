package main

import (
	"os"

	"github.com/spec-kit/admin-portal/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
