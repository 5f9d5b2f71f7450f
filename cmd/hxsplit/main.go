package main

import (
	"os"

	"github.com/pthm/hxsplit/lib/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Logger.Error(err.Error())
		os.Exit(1)
	}
}
