// Package commands implements the socialfeed command line.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"socialfeed/app/config"
	"socialfeed/app/logging"
	"socialfeed/app/repositories"
)

// Version is reported by the version command.
const Version = "1.0.0"

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// HandleCommand runs a subcommand and returns the process exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "serve":
		return serve()
	case "clean":
		return clean()
	case "backup":
		file := ""
		if len(args) > 1 {
			file = args[1]
		}
		return backup(file)
	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(stdout, "Error: backup file path required for restore")
			return 1
		}
		return restore(args[1])
	case "version":
		fmt.Fprintf(stdout, "socialfeed version %s\n", Version)
		return 0
	case "help":
		printHelp()
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

func printHelp() {
	helpText := `Usage: socialfeed <command>

Commands:
  serve                           Run the HTTP API
  clean                           Remove every record from the database
  backup [file]                   Write a backup of the database
  restore <file>                  Replace the database with a backup
  version                         Show version information
  help                            Display this help message
`
	fmt.Fprintln(stdout, helpText)
}

func serve() int {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stdout, "Invalid configuration: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := logging.Configure(ctx, cfg.Log); err != nil {
		fmt.Fprintf(stdout, "Failed to configure logging: %v\n", err)
		return 1
	}

	if err := RunServer(ctx, cfg); err != nil {
		logging.GetLogger("commands").ErrorContext(ctx, "server stopped", "error", err)
		return 1
	}
	return 0
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	response, _ := bufio.NewReader(stdin).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

func openStore() (*repositories.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, cfg, fmt.Errorf("create data directory: %w", err)
	}
	store, err := repositories.NewStore(cfg.DataDir)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

func clean() int {
	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(stdout, "Operation cancelled")
		return 1
	}

	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(stdout, "Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Database cleaned successfully")
	return 0
}

func backup(file string) int {
	store, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	if file == "" {
		file = filepath.Join(filepath.Dir(cfg.DataDir), "backups", fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		fmt.Fprintf(stdout, "Failed to create backup directory: %v\n", err)
		return 1
	}

	f, err := os.Create(file)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := store.Backup(f); err != nil {
		fmt.Fprintf(stdout, "Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Database backed up successfully to %s\n", file)
	return 0
}

func restore(file string) int {
	f, err := os.Open(file)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stdout, "Backup file does not exist: %s\n", file)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if fi, err := f.Stat(); err != nil || fi.Size() == 0 {
		fmt.Fprintf(stdout, "Backup file is empty: %s\n", file)
		return 1
	}

	if !confirm("Existing data will be replaced. Continue?") {
		fmt.Fprintln(stdout, "Operation cancelled")
		return 1
	}

	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(stdout, "Failed to clear database: %v\n", err)
		return 1
	}
	if err := store.Restore(f); err != nil {
		fmt.Fprintf(stdout, "Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Database restored successfully")
	return 0
}
