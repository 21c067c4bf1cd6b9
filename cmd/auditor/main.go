package main

import (
	"fmt"
	"os"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/cmd/auditor/cmd"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
