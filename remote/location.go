// Package remote lets the mod directory live on another machine, reached over ssh
package remote

import (
	"fmt"
	"strconv"
	"strings"
)

// Location represents either a local path or a remote user@host:path
type Location struct {
	IsRemote bool
	User     string // empty = current user
	Host     string
	Port     int // 0 = default (22)
	Path     string
}

// ParseLocation parses a CLI argument into a Location.
//
// Rules:
//   - Starts with "/", "./", "../" or a drive letter ("C:\", "D:/") → local
//   - Contains ":" → remote (user@host:path or user@host:port:path)
//   - Everything else → local
func ParseLocation(arg string) (Location, error) {
	if arg == "" {
		return Location{}, fmt.Errorf("empty path argument")
	}

	if strings.HasPrefix(arg, "/") || strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") ||
		isDrivePath(arg) {
		return Location{Path: arg}, nil
	}

	// Check for remote format: [user@]host:[port:]path
	colonIdx := strings.Index(arg, ":")
	if colonIdx < 0 {
		return Location{Path: arg}, nil
	}

	hostPart := arg[:colonIdx]
	rest := arg[colonIdx+1:]

	if hostPart == "" {
		return Location{}, fmt.Errorf("empty host in remote path %q", arg)
	}

	loc := Location{IsRemote: true}

	if atIdx := strings.Index(hostPart, "@"); atIdx >= 0 {
		loc.User = hostPart[:atIdx]
		loc.Host = hostPart[atIdx+1:]
	} else {
		loc.Host = hostPart
	}

	if loc.Host == "" {
		return Location{}, fmt.Errorf("empty host in remote path %q", arg)
	}

	// Check if rest starts with port:path  (digits followed by colon)
	if secondColon := strings.Index(rest, ":"); secondColon > 0 {
		possiblePort := rest[:secondColon]
		if port, err := strconv.Atoi(possiblePort); err == nil && port > 0 && port <= 65535 {
			loc.Port = port
			rest = rest[secondColon+1:]
		}
	}

	if rest == "" {
		return Location{}, fmt.Errorf("empty path in remote spec %q", arg)
	}

	loc.Path = rest
	return loc, nil
}

// isDrivePath tells whether arg starts with a Windows drive letter such as "C:\" or "d:/"
func isDrivePath(arg string) bool {
	if len(arg) < 3 || arg[1] != ':' || (arg[2] != '\\' && arg[2] != '/') {
		return false
	}
	c := arg[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// SSHSpec returns a string like "user@host" or "host" suitable for display and ssh commands
func (l Location) SSHSpec() string {
	if l.User != "" {
		return l.User + "@" + l.Host
	}
	return l.Host
}

func (l Location) String() string {
	if !l.IsRemote {
		return l.Path
	}
	if l.Port != 0 {
		return fmt.Sprintf("%s:%d:%s", l.SSHSpec(), l.Port, l.Path)
	}
	return l.SSHSpec() + ":" + l.Path
}
