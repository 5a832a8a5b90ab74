package docker

import "github.com/RandyMcMillan/oxker/internal/app"

// Command is one lifecycle action for the driver to execute, sent by the
// input coordinator over the command channel.
type Command struct {
	Control app.DockerControl
	ID      app.ContainerID
}
