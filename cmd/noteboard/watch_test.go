package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCommand(t *testing.T) {
	assert.Contains(t, watchCmd.Long, "search filter does not survive")

	flag := watchCmd.Flags().Lookup("interval")
	require.NotNil(t, flag)
	assert.Equal(t, time.Minute.String(), flag.DefValue)
}
