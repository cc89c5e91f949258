package snap

import "fmt"

// ContainerNotFoundError is reported when the container selector resolves to nothing
type ContainerNotFoundError struct {
	Selector string
}

func (e *ContainerNotFoundError) Error() string {
	return fmt.Sprintf("container not found: %q", e.Selector)
}
