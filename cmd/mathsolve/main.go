// Command mathsolve solves equations and expressions from the command line.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/internal/config"
	"github.com/njchilds90/mathsolve/internal/logging"
)

const (
	appName     = "mathsolve"
	historyFile = ".mathsolve_history"
	promptMain  = "math> "
)

var helpText = `
REPL commands:
  :tier NAME   Switch explanation tier (tier_a, tier_b, tier_c, standard)
  :help        Show this help
  :quit        Exit the REPL
`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "solve":
		os.Exit(cmdSolve(os.Args[2:], os.Stdout))
	case "normalize":
		os.Exit(cmdNormalize(os.Args[2:], os.Stdout))
	case "mistakes":
		os.Exit(cmdMistakes(os.Args[2:], os.Stdout))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %[1]s solve [-tier NAME] [-json] [-config FILE] TEXT
  %[1]s normalize TEXT
  %[1]s mistakes TEXT
  %[1]s repl [-tier NAME] [-config FILE]
`, appName)
}

// loadEngine reads configuration and returns an engine logging through the
// configured logger together with the default tier.
func loadEngine(path string) (*mathsolve.Engine, string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := logging.SetupLogger(cfg.Logging); err != nil {
		return nil, "", err
	}
	engine := mathsolve.NewEngine(mathsolve.WithLogger(logging.GetLogger("cli")))
	return engine, cfg.Solver.DefaultTier, nil
}

// -----------------------------------------------------------------------------
// solve
// -----------------------------------------------------------------------------

func cmdSolve(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	tier := fs.String("tier", "", "explanation tier")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintf(os.Stderr, "%s: nothing to solve\n", appName)
		return 2
	}

	engine, defaultTier, err := loadEngine(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	if *tier == "" {
		*tier = defaultTier
	}

	res := engine.SolveText(text, *tier)
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
	} else {
		printResult(out, res, false)
	}
	if res.EquationType == mathsolve.TypeError {
		return 1
	}
	return 0
}

// printResult writes a human-readable rendering of res.
func printResult(out io.Writer, res mathsolve.SolveResult, color bool) {
	paint := func(f func(string) string, s string) string {
		if color {
			return f(s)
		}
		return s
	}
	for _, step := range res.Steps {
		fmt.Fprintln(out, step)
	}
	if len(res.Steps) > 0 {
		fmt.Fprintln(out)
	}
	if res.EquationType == mathsolve.TypeError {
		fmt.Fprintln(out, paint(red, res.Answer))
	} else {
		fmt.Fprintf(out, "Answer: %s (%s)\n", paint(green, res.Answer), res.EquationType)
	}
	if res.Suggestion != "" {
		fmt.Fprintf(out, "Suggestion: %s\n", res.Suggestion)
	}
	fmt.Fprintln(out, res.Explanation)
	for _, m := range res.CommonMistakes {
		fmt.Fprintf(out, "%s %s\n", paint(blue, "Watch out:"), m.WrongApproach)
		fmt.Fprintf(out, "  correct: %s\n", m.CorrectApproach)
		fmt.Fprintf(out, "  tip: %s\n", m.Tip)
	}
}

// -----------------------------------------------------------------------------
// normalize / mistakes
// -----------------------------------------------------------------------------

func cmdNormalize(args []string, out io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "%s: nothing to normalize\n", appName)
		return 2
	}
	fmt.Fprintln(out, mathsolve.Normalize(strings.Join(args, " ")))
	return 0
}

func cmdMistakes(args []string, out io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "%s: nothing to check\n", appName)
		return 2
	}
	hits := mathsolve.DetectMistakes(mathsolve.Normalize(strings.Join(args, " ")))
	if len(hits) == 0 {
		fmt.Fprintln(out, "no common mistakes detected")
		return 0
	}
	for _, m := range hits {
		fmt.Fprintf(out, "%s: %s\n", m.ID, m.WrongApproach)
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	tierFlag := fs.String("tier", "", "explanation tier")
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	engine, tier, err := loadEngine(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	if *tierFlag != "" {
		tier = *tierFlag
	}

	fmt.Println("mathsolve REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			fields := strings.Fields(line)
			switch strings.ToLower(fields[0]) {
			case ":quit":
				return 0
			case ":help":
				fmt.Print(helpText)
			case ":tier":
				if len(fields) < 2 {
					fmt.Printf("current tier: %s\n", mathsolve.ParseAudienceTier(tier))
					continue
				}
				tier = fields[1]
				fmt.Printf("tier set to %s\n", mathsolve.ParseAudienceTier(tier))
			default:
				fmt.Println("unknown command. Type :help for commands.")
			}
			continue
		}

		printResult(os.Stdout, engine.SolveText(line, tier), true)
		ln.AppendHistory(line)
	}
}
