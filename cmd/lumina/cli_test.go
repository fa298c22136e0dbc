package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductByArg(t *testing.T) {
	p, err := productByArg("1")
	require.NoError(t, err)
	assert.Equal(t, "Lumina Alpha Headphones", p.Name)

	_, err = productByArg("999")
	assert.Error(t, err)

	_, err = productByArg("abc")
	assert.Error(t, err)
}

func TestRootHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"catalog", "ask", "describe", "identify", "transcribe", "speak", "video", "status"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestVideoCommandAcceptsReferenceImage(t *testing.T) {
	assert.NotNil(t, videoCmd.Flags().Lookup("image"))
	assert.NotNil(t, videoCmd.Flags().Lookup("out"))
}
