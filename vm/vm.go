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

import "fmt"

// Op identifies one of the nine arithmetic and logic commands.
type Op int

// Arithmetic and logic operations. The comparison operations (OpEq, OpGt,
// OpLt) leave -1 on the stack for true and 0 for false.
const (
	OpAdd Op = iota
	OpSub
	OpNeg
	OpEq
	OpGt
	OpLt
	OpAnd
	OpOr
	OpNot
)

var opNames = [...]string{
	"add",
	"sub",
	"neg",
	"eq",
	"gt",
	"lt",
	"and",
	"or",
	"not",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "op(" + fmt.Sprint(int(o)) + ")"
	}
	return opNames[o]
}

// Segment names a region of VM-visible memory with its own addressing rule.
type Segment int

// The eight memory segments.
const (
	Argument Segment = iota
	Local
	Static
	Constant
	This
	That
	Pointer
	Temp
)

var segmentNames = [...]string{
	"argument",
	"local",
	"static",
	"constant",
	"this",
	"that",
	"pointer",
	"temp",
}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segmentNames) {
		return "segment(" + fmt.Sprint(int(s)) + ")"
	}
	return segmentNames[s]
}

// Base returns the predefined assembly symbol holding the segment's base
// address. Only argument, local, this and that are base-relative; for any
// other segment Base returns the empty string.
func (s Segment) Base() string {
	switch s {
	case Argument:
		return "ARG"
	case Local:
		return "LCL"
	case This:
		return "THIS"
	case That:
		return "THAT"
	}
	return ""
}

// Kind discriminates the Command variants.
type Kind int

// Command kinds.
const (
	KindArithmetic Kind = iota
	KindPush
	KindPop
	KindLabel
	KindGoto
	KindIfGoto
	KindFunction
	KindCall
	KindReturn
)

// Command is a single parsed VM command. Commands are immutable values;
// only the payload fields relevant to Kind are meaningful:
//
//	KindArithmetic            Op
//	KindPush, KindPop         Segment, Index
//	KindLabel, KindGoto,
//	KindIfGoto                Name
//	KindFunction, KindCall    Name, Count
//	KindReturn                (none)
//
// Commands carry no source position. The Parser reports positions in its
// errors before a Command is ever built, and the code generator's caller is
// expected to hold on to Parser.Line when positional context is needed.
type Command struct {
	Kind    Kind
	Op      Op
	Segment Segment
	Index   int
	Name    string
	Count   int
}

// String renders the command in its canonical source form.
func (c Command) String() string {
	switch c.Kind {
	case KindArithmetic:
		return c.Op.String()
	case KindPush:
		return fmt.Sprintf("push %v %d", c.Segment, c.Index)
	case KindPop:
		return fmt.Sprintf("pop %v %d", c.Segment, c.Index)
	case KindLabel:
		return "label " + c.Name
	case KindGoto:
		return "goto " + c.Name
	case KindIfGoto:
		return "if-goto " + c.Name
	case KindFunction:
		return fmt.Sprintf("function %s %d", c.Name, c.Count)
	case KindCall:
		return fmt.Sprintf("call %s %d", c.Name, c.Count)
	case KindReturn:
		return "return"
	}
	return "command(" + fmt.Sprint(int(c.Kind)) + ")"
}
