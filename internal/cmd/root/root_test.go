package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams/iostreamstest"
)

func TestNewCmdRoot_Commands(t *testing.T) {
	streams := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: streams.IOStreams}

	cmd := NewCmdRoot(f)

	want := []string{
		"monitor", "metric", "event", "host", "downtime",
		"logs", "tag", "user", "investigate", "config", "version",
	}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %q not registered", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestNewCmdRoot_FlagErrors(t *testing.T) {
	t.Setenv("DDOG_CONFIG_DIR", t.TempDir())
	streams := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: streams.IOStreams}

	cmd := NewCmdRoot(f)
	cmd.SetArgs([]string{"version", "--no-such-flag"})
	cmd.SetOut(streams.OutBuf)
	cmd.SetErr(streams.ErrBuf)

	err := cmd.Execute()
	var flagErr *cmdutil.FlagError
	assert.ErrorAs(t, err, &flagErr)
}
