package main

import "fmt"

// demoHostDispatcher is the commands.HostDispatcher a real embedding's
// native command system would provide. Every command not claimed by a
// mod falls through to here.
type demoHostDispatcher struct{}

func (demoHostDispatcher) Dispatch(name string, args []string, senderID string) (string, error) {
	return fmt.Sprintf("unknown command %q (no mod or host command registered)", name), nil
}
