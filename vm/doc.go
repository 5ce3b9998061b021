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

// Package vm defines the Hack VM command set and its parser.
//
// The Hack VM is the stack machine of the nand2tetris course
// (https://www.nand2tetris.org/). Source files hold one command per line;
// everything from "//" to the end of a line is a comment.
//
// Supported commands:
//
//	TOS is the value on top of the stack. NOS is the next value down.
//
//	command           stack      description
//	-------           -----      ----------------------------------------------
//	push <seg> <i>    -n         push the i-th entry of segment seg
//	pop <seg> <i>     n-         pop TOS into the i-th entry of segment seg
//	add               xy-z       z = x + y
//	sub               xy-z       z = x - y
//	neg               n-n        arithmetic negation of TOS
//	eq                xy-z       z = -1 if x == y, else 0
//	gt                xy-z       z = -1 if x > y, else 0
//	lt                xy-z       z = -1 if x < y, else 0
//	and               xy-z       bitwise and
//	or                xy-z       bitwise or
//	not               n-n        bitwise complement of TOS
//	label <name>                 declare a branch target
//	goto <name>                  unconditional jump
//	if-goto <name>    n-         jump if TOS is non-zero
//	function <f> <k>             declare function f with k local variables
//	call <f> <n>                 call f, n arguments already pushed
//	return            n-         return to the caller with TOS as the result
//
// Segments are argument, local, static, constant, this, that, pointer and
// temp. The constant segment is read-only: "pop constant i" is rejected.
// Symbols (label, function and call names) are sequences of letters, digits,
// underscores, dots, dollar signs and colons that do not start with a digit.
// Indices and counts are non-negative decimal integers up to 32767.
//
// The parser is purely syntactic. It does not resolve label scoping, check
// that branch targets exist, or verify that function names are unique; all
// of that is the concern of the code generator and, ultimately, of the
// program author.
package vm
