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

	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/internal/swriter"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <file.bobc>",
	Short: "Disassemble a compiled bytecode file",
	Long: `Disasm deserializes a .bobc file and prints its disassembly,
matching original_source/bob/cmd.py's disassemble_file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func loadCodeObject(filename string) (*bytecode.CodeObject, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	co, err := bytecode.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserializing %s: %w", filename, err)
	}
	return co, nil
}

func runDisasm(_ *cobra.Command, args []string) error {
	co, err := loadCodeObject(args[0])
	if err != nil {
		return err
	}
	w := swriter.NewErrWriter(os.Stdout)
	co.Disassemble(w)
	return w.Err
}
