// This file is part of hack-vm-translator -
// https://github.com/hashcatHitman/hack-vm-translator
//
// Copyright 2025 hashcatHitman
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

package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxConstant is the largest index or constant a command may carry. It is
// the largest value a Hack @-instruction can load.
const MaxConstant = 0x7FFF

var opIndex = map[string]Op{
	"add": OpAdd,
	"sub": OpSub,
	"neg": OpNeg,
	"eq":  OpEq,
	"gt":  OpGt,
	"lt":  OpLt,
	"and": OpAnd,
	"or":  OpOr,
	"not": OpNot,
}

var segmentIndex = map[string]Segment{
	"argument": Argument,
	"local":    Local,
	"static":   Static,
	"constant": Constant,
	"this":     This,
	"that":     That,
	"pointer":  Pointer,
	"temp":     Temp,
}

// ParseError describes a source line that does not conform to the command
// grammar. Line numbers are 1-based.
type ParseError struct {
	Unit string // logical name of the translation unit
	Line int
	Text string // the offending line, comments and padding stripped
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s in %q", e.Unit, e.Line, e.Msg, e.Text)
}

// Parser reads the raw text of one translation unit and yields Commands one
// at a time. Create a new Parser for each unit; a Parser cannot be reused.
type Parser struct {
	name string
	s    *bufio.Scanner
	line int // lines consumed so far
	cur  int // line of the last command returned
}

// NewParser returns a Parser reading unit text from r. The name parameter is
// the unit's logical name and is only used in error messages.
func NewParser(name string, r io.Reader) *Parser {
	return &Parser{name: name, s: bufio.NewScanner(r)}
}

// Line returns the 1-based line number of the most recent command returned
// by Next.
func (p *Parser) Line() int { return p.cur }

// Next returns the next command in the unit, skipping blank lines and
// comments. It returns io.EOF once the unit is exhausted and a *ParseError
// if a line does not parse; parsing must not continue after an error.
func (p *Parser) Next() (Command, error) {
	for p.s.Scan() {
		p.line++
		line := p.s.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c, msg := parseLine(line)
		if msg != "" {
			return Command{}, &ParseError{
				Unit: p.name,
				Line: p.line,
				Text: line,
				Msg:  msg,
			}
		}
		p.cur = p.line
		return c, nil
	}
	if err := p.s.Err(); err != nil {
		return Command{}, errors.Wrapf(err, "%s: read failed", p.name)
	}
	return Command{}, io.EOF
}

// isSymbol reports whether s is a valid identifier: a non-empty sequence of
// ASCII letters, digits, underscores, dots, dollar signs and colons that
// does not start with a digit.
func isSymbol(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '$' || c == ':':
		default:
			return false
		}
	}
	return true
}

// parseIndex parses a non-negative decimal integer no larger than
// MaxConstant.
func parseIndex(s string) (int, string) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Sprintf("invalid constant %q", s)
	}
	if n > MaxConstant {
		return 0, fmt.Sprintf("constant %d exceeds %d", n, MaxConstant)
	}
	return n, ""
}

func parseLine(line string) (Command, string) {
	f := strings.Fields(line)
	switch len(f) {
	case 1:
		if op, ok := opIndex[f[0]]; ok {
			return Command{Kind: KindArithmetic, Op: op}, ""
		}
		if f[0] == "return" {
			return Command{Kind: KindReturn}, ""
		}
		return Command{}, fmt.Sprintf("unrecognized command %q", f[0])

	case 2:
		var k Kind
		switch f[0] {
		case "label":
			k = KindLabel
		case "goto":
			k = KindGoto
		case "if-goto":
			k = KindIfGoto
		default:
			return Command{}, fmt.Sprintf("unrecognized command %q", f[0])
		}
		if !isSymbol(f[1]) {
			return Command{}, fmt.Sprintf("invalid symbol %q", f[1])
		}
		return Command{Kind: k, Name: f[1]}, ""

	case 3:
		switch f[0] {
		case "push", "pop":
			seg, ok := segmentIndex[f[1]]
			if !ok {
				return Command{}, fmt.Sprintf("unrecognized segment %q", f[1])
			}
			n, msg := parseIndex(f[2])
			if msg != "" {
				return Command{}, msg
			}
			if f[0] == "pop" {
				if seg == Constant {
					return Command{}, "cannot pop to the constant segment"
				}
				return Command{Kind: KindPop, Segment: seg, Index: n}, ""
			}
			return Command{Kind: KindPush, Segment: seg, Index: n}, ""
		case "function", "call":
			if !isSymbol(f[1]) {
				return Command{}, fmt.Sprintf("invalid symbol %q", f[1])
			}
			n, msg := parseIndex(f[2])
			if msg != "" {
				return Command{}, msg
			}
			k := KindFunction
			if f[0] == "call" {
				k = KindCall
			}
			return Command{Kind: k, Name: f[1], Count: n}, ""
		}
		return Command{}, fmt.Sprintf("unrecognized command %q", f[0])
	}
	return Command{}, fmt.Sprintf("expected 1 to 3 fields, got %d", len(f))
}
