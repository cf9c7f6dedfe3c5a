package remote

import (
	"context"
	"os/exec"
	"strconv"
)

// sshSubsystemArgs builds the arguments for the system ssh binary to invoke a subsystem (e.g. sftp)
func sshSubsystemArgs(loc Location, explicitKeyPath string, subsystem string) []string {
	args := make([]string, 0, 8)
	if loc.User != "" {
		args = append(args, "-l", loc.User)
	}
	if loc.Port != 0 {
		args = append(args, "-p", strconv.Itoa(loc.Port))
	}
	if explicitKeyPath != "" {
		args = append(args, "-i", explicitKeyPath)
	}
	args = append(args, "-s", loc.Host, subsystem)
	return args
}

// SSHSubsystemCommand creates an exec.Cmd that invokes an SSH subsystem (e.g. sftp)
func SSHSubsystemCommand(ctx context.Context, loc Location, explicitKeyPath string, subsystem string) *exec.Cmd {
	return exec.CommandContext(ctx, "ssh", sshSubsystemArgs(loc, explicitKeyPath, subsystem)...)
}
