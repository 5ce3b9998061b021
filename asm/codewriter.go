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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/hashcatHitman/hack-vm-translator/internal/hvt"
	"github.com/hashcatHitman/hack-vm-translator/vm"
)

const (
	// tempBase is the RAM address of temp 0. The segment spans R5-R12.
	tempBase = 5
	tempSize = 8
	// stackBase is the RAM address the bootstrap points SP at.
	stackBase = 256
	// entryPoint is the function the bootstrap transfers control to.
	entryPoint = "Sys.init"
)

// RangeError reports a pointer or temp index outside the segment's fixed
// width. It marks a malformed program, not a translator defect, and aborts
// the run just like a parse error.
type RangeError struct {
	Segment vm.Segment
	Index   int
	Size    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v %d out of range, index must be 0 <= i <= %d",
		e.Segment, e.Index, e.Size-1)
}

// Option is the Writer configuration function type.
type Option func(*Writer)

// Comments enables or disables a "// <command>" comment line ahead of each
// command's code. The default is false.
func Comments(on bool) Option {
	return func(w *Writer) { w.comments = on }
}

// Writer generates Hack assembly, one VM command at a time, and owns all
// state that must survive across translation units: the counters seeding
// comparison and return-address labels. Both counters only ever grow, so no
// two generated labels can collide anywhere in a run, no matter how many
// units it spans.
type Writer struct {
	w        *hvt.ErrWriter
	comments bool
	unit     string // static variable namespace, set by SetUnit
	fn       string // enclosing function, "" outside any function
	cmpID    int
	retID    int
}

// NewWriter returns a Writer emitting assembly to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cw := &Writer{w: hvt.NewErrWriter(w)}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

// Err returns the first error encountered while writing output, if any.
func (w *Writer) Err() error { return w.w.Err }

// SetUnit starts a new translation unit. The name becomes the namespace for
// static variables ("name.i") and, until the unit's first function command,
// for branch labels and return-address labels too.
func (w *Writer) SetUnit(name string) {
	w.unit = name
	w.fn = ""
}

// scope is the prefix namespacing labels generated for the current position
// in the program.
func (w *Writer) scope() string {
	if w.fn != "" {
		return w.fn
	}
	if w.unit != "" {
		return w.unit
	}
	return "Bootstrap"
}

func (w *Writer) emit(lines ...string) {
	for _, l := range lines {
		w.w.WriteLine(l)
	}
}

// WriteBootstrap emits the program prologue: SP is pointed at the stack
// base and Sys.init is called with no arguments through the regular call
// machinery. It must be emitted at most once, before any unit's code.
func (w *Writer) WriteBootstrap() error {
	if w.comments {
		w.emit("// bootstrap")
	}
	w.emit(
		"@"+strconv.Itoa(stackBase),
		"D=A",
		"@SP",
		"M=D",
	)
	w.call(entryPoint, 0)
	return w.w.Err
}

// WriteCommand appends the assembly for a single command.
func (w *Writer) WriteCommand(c vm.Command) error {
	if w.comments {
		w.emit("// " + c.String())
	}
	switch c.Kind {
	case vm.KindArithmetic:
		w.arithmetic(c.Op)
	case vm.KindPush:
		return w.push(c)
	case vm.KindPop:
		return w.pop(c)
	case vm.KindLabel:
		w.emit("(" + w.branchTarget(c.Name) + ")")
	case vm.KindGoto:
		w.emit("@"+w.branchTarget(c.Name), "0;JMP")
	case vm.KindIfGoto:
		w.emit("@SP", "AM=M-1", "D=M", "@"+w.branchTarget(c.Name), "D;JNE")
	case vm.KindFunction:
		w.function(c.Name, c.Count)
	case vm.KindCall:
		w.call(c.Name, c.Count)
	case vm.KindReturn:
		w.funcReturn()
	default:
		return errors.Errorf("unknown command kind %d", int(c.Kind))
	}
	return w.w.Err
}

// branchTarget namespaces a label, goto or if-goto target so that the same
// label text in two functions never collides.
func (w *Writer) branchTarget(name string) string {
	return w.scope() + "$" + name
}

// tempAddr maps a temp index to its RAM address.
func tempAddr(i int) (int, error) {
	if i < 0 || i >= tempSize {
		return 0, &RangeError{Segment: vm.Temp, Index: i, Size: tempSize}
	}
	return tempBase + i, nil
}

// pointerSym maps pointer 0 and 1 to THIS and THAT.
func pointerSym(i int) (string, error) {
	switch i {
	case 0:
		return "THIS", nil
	case 1:
		return "THAT", nil
	}
	return "", &RangeError{Segment: vm.Pointer, Index: i, Size: 2}
}

// staticSym names the storage cell backing "static i" in the current unit.
// The unit name keeps statics private per source file; the same index in
// the same unit always aliases the same cell.
func (w *Writer) staticSym(i int) string {
	return w.unit + "." + strconv.Itoa(i)
}

// push leaves the addressed value in D, then stores D at RAM[SP] and
// increments SP.
func (w *Writer) push(c vm.Command) error {
	switch c.Segment {
	case vm.Constant:
		w.emit("@"+strconv.Itoa(c.Index), "D=A")
	case vm.Argument, vm.Local, vm.This, vm.That:
		w.emit(
			"@"+strconv.Itoa(c.Index),
			"D=A",
			"@"+c.Segment.Base(),
			"A=D+M",
			"D=M",
		)
	case vm.Temp:
		a, err := tempAddr(c.Index)
		if err != nil {
			return err
		}
		w.emit("@"+strconv.Itoa(a), "D=M")
	case vm.Pointer:
		sym, err := pointerSym(c.Index)
		if err != nil {
			return err
		}
		w.emit("@"+sym, "D=M")
	case vm.Static:
		w.emit("@"+w.staticSym(c.Index), "D=M")
	}
	w.emit("@SP", "A=M", "M=D", "@SP", "M=M+1")
	return w.w.Err
}

// pop decrements SP and stores the popped value at the addressed cell. The
// base-relative segments need the target address computed first; it is
// parked in R13 while the value is popped.
func (w *Writer) pop(c vm.Command) error {
	switch c.Segment {
	case vm.Constant:
		// the parser rejects this; guard against hand-built commands
		return errors.New("cannot pop to the constant segment")
	case vm.Argument, vm.Local, vm.This, vm.That:
		w.emit(
			"@"+strconv.Itoa(c.Index),
			"D=A",
			"@"+c.Segment.Base(),
			"D=D+M",
			"@R13",
			"M=D",
			"@SP",
			"AM=M-1",
			"D=M",
			"@R13",
			"A=M",
			"M=D",
		)
	case vm.Temp:
		a, err := tempAddr(c.Index)
		if err != nil {
			return err
		}
		w.emit("@SP", "AM=M-1", "D=M", "@"+strconv.Itoa(a), "M=D")
	case vm.Pointer:
		sym, err := pointerSym(c.Index)
		if err != nil {
			return err
		}
		w.emit("@SP", "AM=M-1", "D=M", "@"+sym, "M=D")
	case vm.Static:
		w.emit("@SP", "AM=M-1", "D=M", "@"+w.staticSym(c.Index), "M=D")
	}
	return w.w.Err
}

var binaryOp = map[vm.Op]string{
	vm.OpAdd: "M=D+M",
	vm.OpSub: "M=M-D",
	vm.OpAnd: "M=D&M",
	vm.OpOr:  "M=D|M",
}

var compareJump = map[vm.Op]string{
	vm.OpEq: "JEQ",
	vm.OpGt: "JGT",
	vm.OpLt: "JLT",
}

func (w *Writer) arithmetic(op vm.Op) {
	switch op {
	case vm.OpAdd, vm.OpSub, vm.OpAnd, vm.OpOr:
		// pop the right operand into D, combine with the new top in place
		w.emit("@SP", "AM=M-1", "D=M", "A=A-1", binaryOp[op])
	case vm.OpNeg:
		w.emit("@SP", "A=M-1", "M=-M")
	case vm.OpNot:
		w.emit("@SP", "A=M-1", "M=!M")
	case vm.OpEq, vm.OpGt, vm.OpLt:
		w.compare(op)
	}
}

// compare pops two operands and replaces them with -1 (true) or 0 (false).
// Each occurrence draws a fresh label pair from the monotonic counter, so
// repeating the same mnemonic any number of times never reuses a label.
func (w *Writer) compare(op vm.Op) {
	n := strconv.Itoa(w.cmpID)
	w.cmpID++
	isTrue, done := "CMP_TRUE."+n, "CMP_END."+n
	w.emit(
		"@SP",
		"AM=M-1",
		"D=M",
		"A=A-1",
		"D=M-D",
		"@"+isTrue,
		"D;"+compareJump[op],
		"@SP",
		"A=M-1",
		"M=0",
		"@"+done,
		"0;JMP",
		"("+isTrue+")",
		"@SP",
		"A=M-1",
		"M=-1",
		"("+done+")",
	)
}

// function declares the entry label and zero-initializes nLocals stack
// slots. VM function names are unique program-wide by convention, so the
// entry label needs no extra namespacing.
func (w *Writer) function(name string, nLocals int) {
	w.fn = name
	w.emit("(" + name + ")")
	for i := 0; i < nLocals; i++ {
		w.emit("@SP", "A=M", "M=0", "@SP", "M=M+1")
	}
}

// call saves the caller's frame and transfers control to the callee:
//
//	push <return label>
//	push LCL, ARG, THIS, THAT
//	ARG = SP - 5 - nArgs
//	LCL = SP
//	goto callee
//	(<return label>)
//
// The return label is drawn from the monotonic counter and is therefore
// unique per call site across the whole run.
func (w *Writer) call(name string, nArgs int) {
	ret := w.scope() + "$ret." + strconv.Itoa(w.retID)
	w.retID++
	w.emit("@"+ret, "D=A", "@SP", "A=M", "M=D", "@SP", "M=M+1")
	for _, sym := range [...]string{"LCL", "ARG", "THIS", "THAT"} {
		w.emit("@"+sym, "D=M", "@SP", "A=M", "M=D", "@SP", "M=M+1")
	}
	w.emit(
		"@"+strconv.Itoa(5+nArgs),
		"D=A",
		"@SP",
		"D=M-D",
		"@ARG",
		"M=D",
	)
	w.emit("@SP", "D=M", "@LCL", "M=D")
	w.emit("@"+name, "0;JMP")
	w.emit("(" + ret + ")")
}

// funcReturn unwinds the callee frame. The restore order is the exact
// reverse of the save order in call:
//
//	frame = LCL                (kept in R13)
//	retAddr = *(frame - 5)     (kept in R14, before the return value can
//	                            overwrite it when nArgs == 0)
//	*ARG = pop()
//	SP = ARG + 1
//	THAT, THIS, ARG, LCL = *(--frame), each in turn
//	goto retAddr
func (w *Writer) funcReturn() {
	w.emit("@LCL", "D=M", "@R13", "M=D")
	w.emit("@5", "A=D-A", "D=M", "@R14", "M=D")
	w.emit("@SP", "AM=M-1", "D=M", "@ARG", "A=M", "M=D")
	w.emit("@ARG", "D=M+1", "@SP", "M=D")
	for _, sym := range [...]string{"THAT", "THIS", "ARG", "LCL"} {
		w.emit("@R13", "AM=M-1", "D=M", "@"+sym, "M=D")
	}
	w.emit("@R14", "A=M", "0;JMP")
}
