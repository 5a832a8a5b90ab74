package apperror

import (
	"errors"
	"strings"
	"testing"
)

func TestNewWrapsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := New(KindDockerCommand, cause)

	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if err.Kind != KindDockerCommand {
		t.Fatalf("kind = %v", err.Kind)
	}
	if !strings.Contains(err.Error(), "socket closed") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestConnectErrorHidesCause(t *testing.T) {
	// The connect overlay shows a stable message regardless of the
	// transport-level cause.
	err := New(KindDockerConnect, errors.New("dial unix: no such file"))
	if err.Error() != "unable to access the Docker daemon" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestNewMsg(t *testing.T) {
	err := NewMsg(KindMouseCapture, "capture rejected")
	if !strings.Contains(err.Error(), "capture rejected") {
		t.Fatalf("Error() = %q", err.Error())
	}
	if errors.Unwrap(err) != nil {
		t.Fatal("message-only error should have no cause")
	}
}

func TestFatal(t *testing.T) {
	if !NewMsg(KindTerminal, "tty gone").Fatal() {
		t.Fatal("terminal errors are fatal")
	}
	for _, k := range []Kind{KindDockerConnect, KindDockerCommand, KindMouseCapture, KindExec} {
		if New(k, errors.New("x")).Fatal() {
			t.Fatalf("kind %v should be recoverable", k)
		}
	}
}
