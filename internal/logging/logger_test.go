package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger, closeLog, err := New("debug", "json", "")
	require.NoError(t, err)
	assert.NoError(t, closeLog())
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, _, err = New("loud", "json", "")
	assert.Error(t, err)

	_, _, err = New("info", "xml", "")
	assert.Error(t, err)
}

func TestNewToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")

	logger, closeLog, err := New("info", "text", path)
	require.NoError(t, err)
	logger.WithField("symbol", "AAPL").Info("priced")
	require.NoError(t, closeLog())
	assert.Error(t, closeLog(), "file already closed")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "symbol=AAPL")
}

func TestContext(t *testing.T) {
	logger := Discard()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
