package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation_Local(t *testing.T) {
	tests := []struct {
		input string
		path  string
	}{
		{"/home/user/mods/armor", "/home/user/mods/armor"},
		{"./relative", "./relative"},
		{"../parent", "../parent"},
		{"justadirectory", "justadirectory"},
		{`C:\Games\DDDA\mods\armor`, `C:\Games\DDDA\mods\armor`},
		{"d:/mods/armor", "d:/mods/armor"},
	}
	for _, tt := range tests {
		loc, err := ParseLocation(tt.input)
		assert.NoError(t, err, "input: %s", tt.input)
		assert.False(t, loc.IsRemote, "input: %s", tt.input)
		assert.Equal(t, tt.path, loc.Path, "input: %s", tt.input)
		assert.Equal(t, tt.path, loc.String(), "input: %s", tt.input)
	}
}

func TestParseLocation_Remote(t *testing.T) {
	tests := []struct {
		input string
		user  string
		host  string
		port  int
		path  string
	}{
		{"user@host:/path", "user", "host", 0, "/path"},
		{"host:/path", "", "host", 0, "/path"},
		{"user@myserver.com:2222:/data/mods", "user", "myserver.com", 2222, "/data/mods"},
		{"root@10.0.0.1:/mnt/disk", "root", "10.0.0.1", 0, "/mnt/disk"},
		{"user@host:22:/path/to/dir", "user", "host", 22, "/path/to/dir"},
		{"gamebox:mods/armor", "", "gamebox", 0, "mods/armor"},
	}
	for _, tt := range tests {
		loc, err := ParseLocation(tt.input)
		assert.NoError(t, err, "input: %s", tt.input)
		assert.True(t, loc.IsRemote, "input: %s", tt.input)
		assert.Equal(t, tt.user, loc.User, "input: %s", tt.input)
		assert.Equal(t, tt.host, loc.Host, "input: %s", tt.input)
		assert.Equal(t, tt.port, loc.Port, "input: %s", tt.input)
		assert.Equal(t, tt.path, loc.Path, "input: %s", tt.input)
		assert.Equal(t, tt.input, loc.String(), "input: %s", tt.input)
	}
}

func TestParseLocation_Errors(t *testing.T) {
	tests := []string{
		"",
		":path", // empty host
		"@:/p",  // empty host after @
		"host:", // empty path
	}
	for _, input := range tests {
		_, err := ParseLocation(input)
		assert.Error(t, err, "input: %s", input)
	}
}

func TestSSHSpec(t *testing.T) {
	assert.Equal(t, "myhost", Location{IsRemote: true, Host: "myhost"}.SSHSpec())
	assert.Equal(t, "me@myhost", Location{IsRemote: true, User: "me", Host: "myhost"}.SSHSpec())
}

func TestSSHSubsystemArgs(t *testing.T) {
	loc := Location{IsRemote: true, User: "me", Host: "gamebox", Port: 2222, Path: "/mods"}
	assert.Equal(t,
		[]string{"-l", "me", "-p", "2222", "-i", "/keys/id", "-s", "gamebox", "sftp"},
		sshSubsystemArgs(loc, "/keys/id", "sftp"),
	)
	assert.Equal(t,
		[]string{"-s", "gamebox", "sftp"},
		sshSubsystemArgs(Location{IsRemote: true, Host: "gamebox"}, "", "sftp"),
	)
}
