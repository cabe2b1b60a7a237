package main

import "github.com/nikogura/resume-latex/cmd"

func main() {
	cmd.Execute()
}
