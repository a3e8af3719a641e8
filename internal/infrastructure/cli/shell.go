package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/darylhandley/15five-utils/internal/infrastructure/config"
	"github.com/darylhandley/15five-utils/pkg/storage"
)

// runShell starts the interactive REPL. The user cache and readline
// history live for the whole session, and the config watcher swaps in
// fresh credentials the moment the operator saves them.
func runShell() error {
	services, err := loadServices()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hot-reload the session when the config file changes, so expired
	// browser credentials can be replaced without restarting the shell.
	if path, err := config.Path(); err == nil {
		if watcher, err := config.NewWatcher(path, 0, func(cfg *config.Config) {
			services.Gateway.SetSession(sessionFrom(cfg))
			fmt.Println("\nSession credentials reloaded.")
		}); err == nil {
			go func() { _ = watcher.Run(ctx) }()
		}
	}

	fmt.Println("15five-utils interactive shell")
	fmt.Println("Type a command and press Enter. Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, storage.UtilsDir, "history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "15five> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      buildCompleter(RootCmd),

		Stdin:  readline.NewCancelableStdin(os.Stdin),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				fmt.Println("\nGoodbye!")
				break
			}
			continue
		} else if err == io.EOF {
			fmt.Println("\nGoodbye!")
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "q" {
			fmt.Println("Goodbye!")
			break
		}

		dispatch(strings.Fields(line))
	}

	return nil
}

// dispatch runs one shell line through the cobra command tree.
func dispatch(args []string) {
	if args[0] == "shell" {
		return
	}
	if args[0] == "help" {
		args = append([]string{"--help"}, args[1:]...)
	}

	// Flag values persist across Execute calls; reset them.
	objectivesFull = false

	RootCmd.SetArgs(args)
	if err := RootCmd.Execute(); err != nil {
		printError(err)
	}
}

// buildCompleter derives tab completion from the registered commands.
func buildCompleter(root *cobra.Command) readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range root.Commands() {
		if cmd.Hidden {
			continue
		}
		var children []readline.PrefixCompleterInterface
		for _, sub := range cmd.Commands() {
			children = append(children, readline.PcItem(sub.Name()))
		}
		items = append(items, readline.PcItem(cmd.Name(), children...))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}
