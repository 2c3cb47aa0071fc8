package main

import (
	"os"

	"github.com/yysangh2-design/APP-QTEX/cmd/qtex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
