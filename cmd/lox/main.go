package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/eugecm/lox/pkg/driver"
)

const cliToolVersion = "lox 0.1.0-dev"

const (
	exitOK         = 0
	exitUsage      = 64
	exitDataErr    = 65
	exitNoInput    = 66
	exitSoftware   = 70
	optionSpec     = "c:e:hV"
	defaultProgram = "lox"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	argv := append([]string{defaultProgram}, args...)
	opts, optind, err := getopt.Getopts(argv, optionSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %v\n", err)
		printUsage()
		return exitUsage
	}

	var (
		configPath string
		inline     string
		haveInline bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 'e':
			inline = opt.Value
			haveInline = true
		case 'h':
			printUsage()
			return exitOK
		case 'V':
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return exitOK
		}
	}

	rest := argv[optind:]
	if len(rest) > 1 || (haveInline && len(rest) > 0) {
		fmt.Fprintf(os.Stderr, "lox: unexpected arguments: %v\n", rest)
		printUsage()
		return exitUsage
	}

	searchDir := "."
	if len(rest) == 1 {
		searchDir = filepath.Dir(rest[0])
	}
	cfg, err := loadConfig(configPath, searchDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %v\n", err)
		return exitUsage
	}

	switch {
	case haveInline:
		return execute(driver.NewSession(cfg, os.Stdout), inline)
	case len(rest) == 1:
		return runFile(rest[0], cfg)
	default:
		return runREPL(cfg)
	}
}

// loadConfig reads an explicit config path, or the nearest lox.yml above
// searchDir, or falls back to the defaults.
func loadConfig(explicit, searchDir string) (driver.Config, error) {
	if explicit != "" {
		return driver.LoadConfig(explicit)
	}
	found, err := driver.FindConfig(searchDir)
	if err != nil {
		return driver.DefaultConfig(), err
	}
	if found == "" {
		return driver.DefaultConfig(), nil
	}
	return driver.LoadConfig(found)
}

func runFile(path string, cfg driver.Config) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: read %s: %v\n", path, err)
		return exitNoInput
	}
	session := driver.NewSession(cfg, os.Stdout)
	session.Path = path
	return execute(session, string(source))
}

func execute(session *driver.Session, source string) int {
	err := session.Eval(source)
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(os.Stderr, err.Error())
	return exitCodeFor(err)
}

func exitCodeFor(err error) int {
	var diag *driver.Diagnostic
	if !errors.As(err, &diag) {
		return exitSoftware
	}
	switch diag.Category {
	case driver.CategoryParse, driver.CategoryStatic:
		return exitDataErr
	default:
		return exitSoftware
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lox [-c config] <file.lox>")
	fmt.Fprintln(os.Stderr, "  lox [-c config] -e <source>")
	fmt.Fprintln(os.Stderr, "  lox [-c config]            start the REPL")
	fmt.Fprintln(os.Stderr, "  lox -V | -h")
}
