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

// The hackvm command translates Hack VM code into Hack assembly.
//
// Given a single Foo.vm file it writes Foo.asm next to it. Given a
// directory it translates every *.vm file inside, in lexical order, into a
// single <dir>/<dir>.asm, prefixed with the bootstrap code that initializes
// the stack pointer and calls Sys.init.
//
// Usage:
//
//	hackvm [options] file.vm|directory
//
//	-bootstrap
//		  emit the bootstrap code even for a single file
//	-comments
//		  annotate the output with the source commands
//	-debug
//		  dump parsed commands to stderr
//	-o filename
//		  write output to filename instead of the default
//
// On any error the command reports the failing unit and line on stderr,
// exits non-zero and leaves no output file behind.
package main
