package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmserra/tempo/internal/ticker"
)

type WatchCmd struct{}

// Run keeps the process alive, re-running the generation pass every minute
// so new occurrences appear as periods roll over. Ctrl-C stops it cleanly.
func (c *WatchCmd) Run(ctx *Context) error {
	t := ticker.New(ctx.Engine)
	if err := t.Start(); err != nil {
		return err
	}

	fmt.Println("Watching for due occurrences (Ctrl-C to stop)")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	t.Stop()
	fmt.Println("Stopped")
	return nil
}
