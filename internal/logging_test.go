package rpitop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachFileLogger(t *testing.T) {
	t.Run("invalid log level should error", func(t *testing.T) {
		logFile, err := AttachFileLogger("*:LOUD", false, "")
		assert.Nil(t, logFile)
		assert.Error(t, err)
	})
	t.Run("without saving should not create a file", func(t *testing.T) {
		logFile, err := AttachFileLogger("*:INFO", false, t.TempDir())
		assert.NoError(t, err)
		assert.True(t, check.IfNil(logFile))
	})
	t.Run("saving should create the logs directory", func(t *testing.T) {
		dir := t.TempDir()
		logFile, err := AttachFileLogger("*:INFO", true, dir)
		require.NoError(t, err)
		require.False(t, check.IfNil(logFile))
		defer func() {
			assert.NoError(t, logFile.Close())
		}()

		info, err := os.Stat(filepath.Join(dir, defaultLogsPath))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
