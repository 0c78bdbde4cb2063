package version

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marquee/internal/cmd/application"
)

func TestVersion(t *testing.T) {
	cmd := NewCommand(&application.Mock{
		VersionFunc:      func() string { return "1.2.3" },
		CommitFunc:       func() string { return "abc123" },
		OutputFormatFunc: func() string { return "json" },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var info Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}
