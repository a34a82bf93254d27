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

package lexer

// Kind classifies a scanned Token.
type Kind int

const (
	EOF Kind = iota
	LParen
	RParen
	Quote
	Boolean
	Number
	Ident
)

// Token is one scanned lexical unit together with its source position,
// matching original_source/bob/bobparser.py's pos2coord-derived
// line/column tracking.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}
