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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/schemevm/bob/eval"
	"github.com/schemevm/bob/expr"
	"github.com/schemevm/bob/lexer"
	"github.com/schemevm/bob/parser"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Repl reads one Scheme expression per line, evaluates it against a
single persistent evaluator and environment, and prints its value,
matching original_source/bob/cmd.py's interactive_interpreter. Type
'quit' to exit.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	return repl(os.Stdin, os.Stdout)
}

func repl(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Interactive Scheme interpreter. Type an expression or 'quit'")
	it := eval.New(out)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "[scheme] >> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}
		form, err := replParseOne(line)
		if err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)
			continue
		}
		val, err := it.Interpret(form)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, ": %s\n", describeResult(val))
	}
}

func replParseOne(line string) (expr.Value, error) {
	toks, err := lexer.New(line, "<repl>").Tokens()
	if err != nil {
		return nil, err
	}
	return parser.New(toks).ParseOne()
}

// describeResult prints procedures opaquely, matching
// original_source/bob/cmd.py's "isinstance(val, Procedure)" special case.
func describeResult(v expr.Value) string {
	switch v.(type) {
	case *expr.Lambda, *expr.Builtin:
		return "<procedure object>"
	default:
		return expr.Repr(v)
	}
}
