// Command ecb-bench records commands into a buffer from many workers, plays them back into a
// fresh world and reports how long each phase took.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("ecb-bench failed")
		os.Exit(1)
	}
}
