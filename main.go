// ABOUTME: Entry point for skillsync CLI
// ABOUTME: Terminal client for the SkillSync group flashcard study service

package main

import (
	"fmt"
	"os"

	"github.com/dykkyongdo/SkillSync-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
