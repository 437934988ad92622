package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandLayout(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"blob", "disk", "prices", "inventory"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	for _, name := range []string{"config", "subscription", "region", "results", "fresh", "chart", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestReportCommandRequiresResourceList(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"blob"})

	assert.Error(t, root.Execute())
}

func TestInventoryRejectsUnknownKind(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"inventory", "vm"})

	assert.Error(t, root.Execute())
}
