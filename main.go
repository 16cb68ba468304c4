package main

import "github.com/joblyhq/jobly-api/cmd"

func main() {
	cmd.Execute()
}
