package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/repodoc"
)

// Run executes the key set command.
func (c *KeySetCmd) Run(deps *Dependencies) error {
	if err := deps.Keys.SetAPIKey(deps.Ctx, c.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "API key saved.")
	return nil
}

// Run executes the key show command.
func (c *KeyShowCmd) Run(deps *Dependencies) error {
	key, err := deps.Keys.APIKey(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, MaskKey(key))
	return nil
}

// Run executes the key test command.
func (c *KeyTestCmd) Run(deps *Dependencies) error {
	key := c.Key
	if key == "" {
		var err error
		if key, err = deps.Keys.APIKey(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
			return err
		}
	}

	ok, err := deps.Keys.TestAPIKey(deps.Ctx, key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}
	if !ok {
		fmt.Fprintf(deps.Stdout, "%s API key was rejected by Firecrawl.\n", color.RedString("✗"))
		return repodoc.Errorf(repodoc.EINVALID, "API key rejected")
	}

	fmt.Fprintf(deps.Stdout, "%s API key is valid.\n", color.GreenString("✓"))
	return nil
}
