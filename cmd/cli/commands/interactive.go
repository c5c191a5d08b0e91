package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can plan several days or sizes without reconnecting.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\n🚀 Starting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			session := newSession(cmd.Parent(), os.Stdout)
			return session.run(os.Stdin)
		},
	}
}

// session dispatches typed lines to sibling commands
type session struct {
	commands map[string]*cobra.Command
	out      io.Writer
}

func newSession(root *cobra.Command, out io.Writer) *session {
	commands := make(map[string]*cobra.Command)
	for _, subCmd := range root.Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[subCmd.Name()] = subCmd
	}
	return &session{commands: commands, out: out}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if s.runLine(scanner.Text()) {
			fmt.Fprintln(s.out, "👋 Goodbye!")
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// runLine executes one input line and reports whether the session should end
func (s *session) runLine(line string) bool {
	parts, err := parseCommandLine(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintf(s.out, "❌ Error parsing command: %v\n\n", err)
		return false
	}
	if len(parts) == 0 {
		return false
	}

	cmdName, cmdArgs := parts[0], parts[1:]
	switch cmdName {
	case "exit", "quit":
		return true
	case "help":
		s.printHelp()
		return false
	}

	targetCmd, exists := s.commands[cmdName]
	if !exists {
		fmt.Fprintf(s.out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
		return false
	}

	// Flags keep their values between runs unless reset
	targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})

	// RunE is called directly so PersistentPreRunE does not set the app up again
	if err := targetCmd.ParseFlags(cmdArgs); err != nil {
		fmt.Fprintf(s.out, "❌ Error parsing flags: %v\n\n", err)
		return false
	}
	cmdArgs = targetCmd.Flags().Args()

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
			fmt.Fprintf(s.out, "❌ Error: %v\n\n", err)
			return false
		}
	}

	if targetCmd.RunE != nil {
		if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
			fmt.Fprintf(s.out, "❌ Error: %v\n\n", err)
		}
	} else if targetCmd.Run != nil {
		targetCmd.Run(targetCmd, cmdArgs)
	}
	return false
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands:")

	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := s.commands[name]
		fmt.Fprintf(s.out, "  %-30s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintln(s.out, "\n  help                           Show this help message")
	fmt.Fprintln(s.out, "  exit, quit                     Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
