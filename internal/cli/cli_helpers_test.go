package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const passingScenario = `
name: cli_demo
description: "escape pushes b"
initial: a
states:
  a:
    save: { coins: 2 }
    on_key: { 27: "push:b" }
  b: {}
frames:
  - inputs: [ { type: keydown, key_code: 27, key: Escape } ]
expect:
  stack: [a, b]
  storage: { coins: 2 }
`

const failingScenario = `
name: cli_broken
description: "expects the wrong stack"
initial: a
states:
  a: {}
expect:
  stack: [z]
`
