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

// Package asm generates Hack assembly from parsed VM commands.
//
// The emitted code follows the standard nand2tetris mapping of the VM onto
// the Hack computer's RAM:
//
//	address   symbol    role
//	-------   ------    ----------------------------------------------
//	0         SP        one past the top of the stack
//	1         LCL       base of the local segment
//	2         ARG       base of the argument segment
//	3         THIS      base of the this segment (pointer 0)
//	4         THAT      base of the that segment (pointer 1)
//	5-12      R5-R12    the temp segment
//	13-15     R13-R15   scratch registers for the translator
//	16-255              static variables, one per "<Unit>.<i>" symbol
//	256-2047            the stack
//
// Comparisons use the Hack convention for booleans: -1 (all bits set) for
// true and 0 for false.
//
// Calling convention. A call site pushes the return address and the
// caller's LCL, ARG, THIS and THAT, points ARG below the pushed arguments
// (SP-5-nArgs), points LCL at the current stack top and jumps to the
// callee's entry label. A return walks the saved frame back in the exact
// reverse order, stores the return value where the first argument lived and
// jumps to the saved return address. After a return, the caller finds one
// value on its stack in place of the arguments it pushed, with its four
// segment pointers intact.
//
// The generator is strictly one-pass. It trusts that every goto target is
// declared somewhere and that function names are unique; an undefined
// target only surfaces when the output is assembled.
package asm
