package collectors

import "fmt"

func errUnknownCollector(name string) error {
	return fmt.Errorf("collector %q not registered", name)
}
