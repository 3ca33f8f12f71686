// Command workouts is a terminal front end for the workout API.
//
//	workouts login -e me@example.com -p secret   # prints a token
//	export CLIENT_TOKEN=<token>
//	workouts add --name Run --duration "30 mins"
//	workouts list
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
