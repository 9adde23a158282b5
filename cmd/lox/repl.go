package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/eugecm/lox/pkg/driver"
	"github.com/eugecm/lox/pkg/parser"
)

const continuationPrompt = "... "

type prompter interface {
	Prompt(prompt string) (string, error)
}

func runREPL(cfg driver.Config) int {
	cfg.EchoExpressions = true
	session := driver.NewSession(cfg, os.Stdout)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		code, ok := readChunk(ln, cfg.Prompt, continuationPrompt)
		if !ok {
			fmt.Println()
			return exitOK
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if trimmed == ":quit" {
				return exitOK
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if err := session.Eval(code); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}

// readChunk reads lines until they form a program that parses or fails for
// a reason other than running out of input. It reports false on EOF.
func readChunk(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := p.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.Parse(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
