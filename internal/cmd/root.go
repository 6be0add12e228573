package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"arbor/internal/config"
	"arbor/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Create   CreateCmd   `cmd:"create" help:"Create a worktree for a branch (creates the branch if needed)"`
	Delete   DeleteCmd   `cmd:"delete" aliases:"rm" help:"Remove a worktree, optionally deleting its branch"`
	List     ListCmd     `cmd:"list" aliases:"ls" help:"List worktrees" default:"1"`
	Status   StatusCmd   `cmd:"status" help:"Show uncommitted-change status for a worktree"`
	Commit   CommitCmd   `cmd:"commit" help:"Stage and commit all changes in a worktree"`
	Switch   SwitchCmd   `cmd:"switch" help:"Switch the main checkout to an existing branch"`
	Branches BranchesCmd `cmd:"branches" help:"List local branches"`
	Features FeaturesCmd `cmd:"features" help:"Manage features (add, list, del, status)"`
	Serve    ServeCmd    `cmd:"serve" help:"Run the HTTP API server"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings == nil {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		c.settings = settings
	}

	// Apply MaxLogFiles setting
	if c.MaxLogFiles == 1000 {
		if _, hasEnv := os.LookupEnv("ARBOR_MAX_LOG_FILES"); !hasEnv {
			if c.settings.MaxLogFiles != nil {
				c.MaxLogFiles = *c.settings.MaxLogFiles
			}
		}
	}

	// Apply Debug setting
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("ARBOR_DEBUG"); !hasEnv {
			if c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes inherit debug settings
	// and use the SAME log file (important for correlating parent/child process logs)
	if c.Debug || c.DebugFile != "" {
		os.Setenv("ARBOR_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("ARBOR_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("ARBOR_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the GORM logger
	// never sees a nil logging.Logger
	container, err := NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// commandContext returns the context for a single command invocation,
// bounded by the configured command timeout when one is set.
func (c *CLI) commandContext() (context.Context, context.CancelFunc) {
	if c.settings != nil && c.settings.CommandTimeout != nil && *c.settings.CommandTimeout > 0 {
		return context.WithTimeout(context.Background(), time.Duration(*c.settings.CommandTimeout)*time.Second)
	}
	return context.WithCancel(context.Background())
}
