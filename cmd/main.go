// FilePath: cmd/main.go
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	tm "github.com/buger/goterm"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	// Initialize version info
	nuts.InitVersion()
	rootCmd.Version = nuts.GetVersion()

	if err := rootCmd.Execute(); err != nil {
		if !stderrors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// ClearConsole clears the console screen before the logo is drawn.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"   ___           __  ___         ",
		"  / _ \\___ _  __/  |/  /__  ___  ",
		" /  __/ _ \\ |/ / /|_/ / _ \\/ _ \\ ",
		" \\___/_//_/___/_/  /_/\\___/_//_/ ",
		"..................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
