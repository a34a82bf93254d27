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
	"path/filepath"
	"strings"

	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/compiler"
	"github.com/schemevm/bob/expr"
	"github.com/schemevm/bob/internal/swriter"
	"github.com/spf13/cobra"
)

var (
	compileOutput      string
	compileDisassemble bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.scm>",
	Short: "Compile a Scheme file to bytecode",
	Long: `Compile lowers a Scheme program to a bytecode.CodeObject and
serializes it to a .bobc container, matching
original_source/bob/cmd.py's compile_file.

Examples:
  scheme compile factorial.scm
  scheme compile factorial.scm -o out.bobc
  scheme compile factorial.scm --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: <input without .scm>.bobc)")
	compileCmd.Flags().BoolVar(&compileDisassemble, "disassemble", false, "print disassembly instead of writing a file")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	forms, err := parseSource(string(src), filename)
	if err != nil {
		return err
	}
	co, err := compileForms(forms, filename)
	if err != nil {
		return err
	}

	if compileDisassemble {
		w := swriter.NewErrWriter(os.Stdout)
		co.Disassemble(w)
		return w.Err
	}

	data, err := bytecode.Serialize(co)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", filename, err)
	}

	out := compileOutput
	if out == "" {
		out = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".bobc"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Output file created: %s\n", out)
	return nil
}

// compileForms wraps every top-level form in a synthetic (begin ...) so
// that the whole file compiles into a single top-level CodeObject,
// matching compiler.Compile's one-expression contract and
// original_source/bob/compiler.py's compile_code, which parses a
// program into a single implicit sequence.
func compileForms(forms []expr.Value, name string) (*bytecode.CodeObject, error) {
	body := expr.Value(expr.Null{})
	for i := len(forms) - 1; i >= 0; i-- {
		body = expr.NewPair(forms[i], body)
	}
	program := expr.NewPair(expr.Symbol("begin"), body)
	co, err := compiler.Compile(program, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return co, nil
}
