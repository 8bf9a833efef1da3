package cli_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testdataDir = "../../../../testdata"

// isolate points every store and endpoint setting at test-local values.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for key, val := range map[string]string{
		"TRADECHECK_STORE_DIR":           dir,
		"TRADECHECK_LOG_LEVEL":           "error",
		"TRADECHECK_GEMINI_API_KEY":      "",
		"TRADECHECK_MARKETCHECK_API_KEY": "",
		"TRADECHECK_REDIS_ADDR":          "",
		"TRADECHECK_MYSQL_DSN":           "",
		"TRADECHECK_RETRY_ATTEMPTS":      "1",
	} {
		t.Setenv(key, val)
	}
	return dir
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, err := run(t, cmd, args...)
	require.NoError(t, err)
	return out
}
