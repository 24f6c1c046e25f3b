package main

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseAppLogsFailure(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	closeApp(closerFunc(func() error { return errors.New("redis: client is closed") }))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "redis: client is closed")
}

func TestCloseAppQuietOnSuccess(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	closeApp(closerFunc(func() error { return nil }))

	assert.Empty(t, hook.AllEntries())
}
