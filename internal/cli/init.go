package cli

import "fmt"

type InitCmd struct{}

// Run writes initial snapshots so the data location exists and later runs
// start from a known-good state. Safe to run on an existing installation;
// current data is flushed, not replaced.
func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Sync.Flush(); err != nil {
		return err
	}
	fmt.Printf("Initialized arbor storage at %s\n", ctx.ConfigPath)
	return nil
}
