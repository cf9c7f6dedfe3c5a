package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	mfs "github.com/m-manu/ddda-modfix/fs"
	"github.com/pkg/sftp"
)

// Session is an SFTP connection to the host of a remote mod directory, tunnelled through the
// system ssh binary so that the user's ssh configuration and agent apply
type Session struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	fs    *mfs.SFTPFS
}

// Dial launches ssh with the sftp subsystem for loc and opens an SFTP client over its pipes
func Dial(ctx context.Context, loc Location, explicitKeyPath string) (*Session, error) {
	if !loc.IsRemote {
		return nil, fmt.Errorf("%q is not a remote location", loc.Path)
	}
	cmd := SSHSubsystemCommand(ctx, loc, explicitKeyPath, "sftp")
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("SFTP stdin pipe failed: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("SFTP stdout pipe failed: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("SFTP ssh command failed: %w", err)
	}

	client, err := sftp.NewClientPipe(stdout, stdin)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("SFTP connection to %s failed: %w", loc.SSHSpec(), err)
	}
	return &Session{cmd: cmd, stdin: stdin, fs: mfs.NewSFTPFS(client)}, nil
}

// FS is the remote file system reached through this session
func (s *Session) FS() mfs.FileSystem {
	return s.fs
}

// Close shuts down the SFTP client and waits for ssh to exit
func (s *Session) Close() error {
	closeErr := s.fs.Close()
	_ = s.stdin.Close()
	waitErr := s.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		// ssh exits non-zero once the subsystem's pipes are closed under it
		waitErr = nil
	}
	return errors.Join(closeErr, waitErr)
}
