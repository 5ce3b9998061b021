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

package asm_test

import (
	"strconv"
	"strings"
	"testing"
)

// hackMachine is a minimal interpreter for the Hack instruction subset the
// generator emits. It lets the tests run translated programs and check the
// resulting memory state instead of string-matching assembly.
type hackMachine struct {
	ram  [32768]int16
	a, d int16
	pc   int
	code []hackInstr
}

type hackInstr struct {
	load             bool // @value
	value            int16
	dest, comp, jump string
}

var hackSymbols = map[string]int16{
	"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
	"SCREEN": 16384, "KBD": 24576,
}

func init() {
	for i := 0; i < 16; i++ {
		hackSymbols["R"+strconv.Itoa(i)] = int16(i)
	}
}

func newHackMachine(t *testing.T, src string) *hackMachine {
	t.Helper()
	sym := make(map[string]int16)
	for k, v := range hackSymbols {
		sym[k] = v
	}

	// first pass: bind label declarations to instruction addresses
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "(") {
			name := strings.TrimSuffix(strings.TrimPrefix(line, "("), ")")
			if _, ok := sym[name]; ok {
				t.Fatalf("duplicate label %q", name)
			}
			sym[name] = int16(len(lines))
			continue
		}
		lines = append(lines, line)
	}

	// second pass: resolve @-references, allocating variables from 16 up
	m := &hackMachine{}
	nextVar := int16(16)
	for _, line := range lines {
		if strings.HasPrefix(line, "@") {
			ref := line[1:]
			if n, err := strconv.Atoi(ref); err == nil {
				m.code = append(m.code, hackInstr{load: true, value: int16(n)})
				continue
			}
			v, ok := sym[ref]
			if !ok {
				v = nextVar
				sym[ref] = v
				nextVar++
			}
			m.code = append(m.code, hackInstr{load: true, value: v})
			continue
		}
		ins := hackInstr{comp: line}
		if i := strings.Index(ins.comp, "="); i >= 0 {
			ins.dest, ins.comp = ins.comp[:i], ins.comp[i+1:]
		}
		if i := strings.Index(ins.comp, ";"); i >= 0 {
			ins.comp, ins.jump = ins.comp[:i], ins.comp[i+1:]
		}
		m.code = append(m.code, ins)
	}
	return m
}

func (m *hackMachine) eval(t *testing.T, comp string) int16 {
	mem := m.ram[m.a]
	switch comp {
	case "0":
		return 0
	case "1":
		return 1
	case "-1":
		return -1
	case "D":
		return m.d
	case "A":
		return m.a
	case "M":
		return mem
	case "!D":
		return ^m.d
	case "!A":
		return ^m.a
	case "!M":
		return ^mem
	case "-D":
		return -m.d
	case "-A":
		return -m.a
	case "-M":
		return -mem
	case "D+1":
		return m.d + 1
	case "A+1":
		return m.a + 1
	case "M+1":
		return mem + 1
	case "D-1":
		return m.d - 1
	case "A-1":
		return m.a - 1
	case "M-1":
		return mem - 1
	case "D+A", "A+D":
		return m.d + m.a
	case "D+M", "M+D":
		return m.d + mem
	case "D-A":
		return m.d - m.a
	case "D-M":
		return m.d - mem
	case "A-D":
		return m.a - m.d
	case "M-D":
		return mem - m.d
	case "D&A", "A&D":
		return m.d & m.a
	case "D&M", "M&D":
		return m.d & mem
	case "D|A", "A|D":
		return m.d | m.a
	case "D|M", "M|D":
		return m.d | mem
	}
	t.Fatalf("pc %d: unsupported computation %q", m.pc, comp)
	return 0
}

// run executes the program until it falls off the end or parks itself in a
// tight @label/0;JMP self loop, the conventional Hack halt.
func (m *hackMachine) run(t *testing.T) {
	t.Helper()
	const maxSteps = 100000
	for steps := 0; m.pc < len(m.code); steps++ {
		if steps >= maxSteps {
			t.Fatalf("no halt after %d steps, pc %d", maxSteps, m.pc)
		}
		ins := m.code[m.pc]
		if ins.load {
			m.a = ins.value
			m.pc++
			continue
		}
		v := m.eval(t, ins.comp)
		if strings.ContainsRune(ins.dest, 'M') {
			m.ram[m.a] = v
		}
		if strings.ContainsRune(ins.dest, 'A') {
			m.a = v
		}
		if strings.ContainsRune(ins.dest, 'D') {
			m.d = v
		}
		var taken bool
		switch ins.jump {
		case "":
		case "JGT":
			taken = v > 0
		case "JEQ":
			taken = v == 0
		case "JGE":
			taken = v >= 0
		case "JLT":
			taken = v < 0
		case "JNE":
			taken = v != 0
		case "JLE":
			taken = v <= 0
		case "JMP":
			taken = true
		default:
			t.Fatalf("pc %d: unsupported jump %q", m.pc, ins.jump)
		}
		if !taken {
			m.pc++
			continue
		}
		if int(m.a) == m.pc-1 {
			return // self loop, program done
		}
		m.pc = int(m.a)
	}
}

func (m *hackMachine) sp() int16 { return m.ram[0] }

// stack returns the stack contents from the given base up to SP.
func (m *hackMachine) stack(base int) []int16 {
	return m.ram[base:m.sp()]
}
