package execution

import (
	"context"
	"os/exec"
)

// GoBinary is the go command the Runner invokes
const GoBinary = "go"

// CommandFunc builds the command the Runner starts
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
