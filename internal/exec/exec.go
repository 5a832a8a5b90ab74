// Package exec builds the interactive container session used by the
// terminal hand-off: the dashboard fully releases the terminal, the session
// owns it until it exits, and the dashboard re-acquires it afterwards.
package exec

import (
	"os/exec"

	"github.com/RandyMcMillan/oxker/internal/app"
)

// DefaultShell is tried inside the container; most images carry a POSIX sh
// even when bash is absent.
const DefaultShell = "sh"

// Session describes one interactive exec into a running container.
type Session struct {
	ContainerID app.ContainerID
	Shell       string
}

// NewSession returns a session using the default shell.
func NewSession(id app.ContainerID) *Session {
	return &Session{ContainerID: id, Shell: DefaultShell}
}

// Command builds the docker CLI invocation. The caller wires it to the real
// tty; the docker CLI handles the pty allocation (-t) and resize itself.
func (s *Session) Command() *exec.Cmd {
	return exec.Command("docker", "exec", "-it", string(s.ContainerID), s.Shell)
}
