// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/schemevm/bob/eval"
	"github.com/schemevm/bob/expr"
	"github.com/schemevm/bob/lexer"
	"github.com/schemevm/bob/parser"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file.scm]",
	Short: "Interpret a Scheme file or an inline expression",
	Long: `Run interprets Scheme source with the tree-walking evaluator,
the way original_source/bob/interpreter.py's interpret_code does: forms
are evaluated in sequence purely for their side effects (write calls),
and nothing is printed for the sequence's final value.

Examples:
  scheme run factorial.scm
  scheme run -e "(write (+ 1 2))"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScheme,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate an inline expression instead of reading a file")
}

func readSource(args []string, inlineExpr string) (src, name string, err error) {
	if inlineExpr != "" {
		return inlineExpr, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e/--eval for an inline expression")
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), args[0], nil
}

func runScheme(_ *cobra.Command, args []string) error {
	src, name, err := readSource(args, evalExpr)
	if err != nil {
		return err
	}
	forms, err := parseSource(src, name)
	if err != nil {
		return err
	}
	it := eval.New(os.Stdout)
	for _, form := range forms {
		if _, err := it.Interpret(form); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseSource lexes and parses src into its top-level forms, wrapping
// lex/parse errors with the source's name the way dwscript's
// errors.FormatErrors attaches a filename to compiler diagnostics.
func parseSource(src, name string) ([]expr.Value, error) {
	toks, err := lexer.New(src, name).Tokens()
	if err != nil {
		return nil, fmt.Errorf("%s: lex error: %w", name, err)
	}
	forms, err := parser.New(toks).ParseFile()
	if err != nil {
		return nil, fmt.Errorf("%s: parse error: %w", name, err)
	}
	return forms, nil
}
