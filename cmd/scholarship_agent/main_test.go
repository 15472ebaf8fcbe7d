package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"serve", "migrate", "seed", "scrape", "promote"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %s should be registered", name)
	}
}

func TestSeedCommand_RequiresFileFlag(t *testing.T) {
	flag := seedCmd.Flags().Lookup("file")
	require.NotNil(t, flag)
}

func TestScrapeCommand_RequiresArgs(t *testing.T) {
	err := scrapeCmd.Args(scrapeCmd, []string{})
	require.Error(t, err)

	err = scrapeCmd.Args(scrapeCmd, []string{"https://example.com"})
	require.NoError(t, err)
}
