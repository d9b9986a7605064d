// Package main is the entry point of recapcli, which builds player recaps from
// match payloads on disk or from a running API.
package main

import "riftrewind/recapcli/cmd"

func main() {
	cmd.Execute()
}
