package main

import (
	"fmt"
	"os"

	"termide/applog"
	"termide/clipboardx"
	"termide/config"
	"termide/editor"
)

const version = "0.1.0"

const usage = `usage: termide [options] [path]

Opens path in the editor (file) or file manager (directory); with no
path, restores the last session in the current directory.

Options:
  --version         print the version and exit
  --help             show this help and exit
  --config <path>    load configuration from path instead of the XDG default
  --log <path>       write logs to path instead of the XDG default
`

// exit codes per the CLI contract: 0 normal, 2 usage error, 3 unrecoverable
// terminal error.
const (
	exitOK    = 0
	exitUsage = 2
	exitFatal = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var configOverride, logOverride, path string

	i := 0
	for i < len(args) {
		switch args[i] {
		case "--version":
			fmt.Println("termide " + version)
			return exitOK
		case "--help":
			fmt.Print(usage)
			return exitOK
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --config requires a path")
				return exitUsage
			}
			configOverride = args[i+1]
			i += 2
			continue
		case "--log":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --log requires a path")
				return exitUsage
			}
			logOverride = args[i+1]
			i += 2
			continue
		default:
			if len(args[i]) > 0 && args[i][0] == '-' {
				fmt.Fprintf(os.Stderr, "error: unknown option %q\n", args[i])
				return exitUsage
			}
			if path != "" {
				fmt.Fprintln(os.Stderr, "error: only one path may be given")
				return exitUsage
			}
			path = args[i]
			i++
		}
	}

	cfg, err := config.Load(configOverride)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to parse config, using defaults: %v\n", err)
	}

	logPath := logOverride
	if logPath == "" {
		logPath = config.LogPath()
	}
	logger, err := applog.Open(logPath, applog.ParseLevel(cfg.MinLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
	}
	defer logger.Close()

	files := []string{}
	isDirOpen := false
	if path != "" {
		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			if err := os.Chdir(path); err != nil {
				fmt.Fprintf(os.Stderr, "error: cannot change to directory %s: %v\n", path, err)
				return exitUsage
			}
			isDirOpen = true
		} else {
			files = []string{path}
		}
	}

	return launch(cfg, logger, files, isDirOpen)
}

// launch runs the editor under a panic recovery handler that restores
// the terminal to cooked mode and records a log line before the
// process exits non-zero, per the Panic error-kind policy.
func launch(cfg *config.Config, logger *applog.Logger, files []string, isDirOpen bool) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic: %v", r)
			fmt.Fprintf(os.Stderr, "termide: unrecoverable error, see log for details\n")
			code = exitFatal
		}
	}()

	clip := clipboardx.Open()
	defer clip.Close()

	e := editor.New(cfg, logger, clip)
	if err := e.Run(files, isDirOpen); err != nil {
		logger.Error("editor exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFatal
	}
	return exitOK
}
