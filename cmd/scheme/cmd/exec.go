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

	"github.com/schemevm/bob/vm"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <file.bobc>",
	Short: "Run a compiled bytecode file on the VM",
	Long: `Exec deserializes a .bobc file and runs it on the bytecode VM with
output directed to stdout, matching original_source/bob/cmd.py's
run_compiled.`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(_ *cobra.Command, args []string) error {
	co, err := loadCodeObject(args[0])
	if err != nil {
		return err
	}
	inst, err := vm.New(vm.Output(os.Stdout))
	if err != nil {
		return fmt.Errorf("initializing VM: %w", err)
	}
	if err := inst.Run(co); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}
