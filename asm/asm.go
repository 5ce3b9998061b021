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
	"io"

	"github.com/pkg/errors"

	"github.com/hashcatHitman/hack-vm-translator/vm"
)

// Translate translates one translation unit read from r, appending its
// assembly to w. The name parameter is the unit's logical name; it
// namespaces the unit's static variables and prefixes error messages.
//
// Units sharing a Writer are translated into a single program: the Writer's
// label counters carry over, keeping every generated label unique across
// units. The first error, from parsing, code generation or the underlying
// io.Writer, aborts the unit.
func Translate(name string, r io.Reader, w *Writer) error {
	w.SetUnit(name)
	p := vm.NewParser(name, r)
	for {
		c, err := p.Next()
		if err == io.EOF {
			return w.Err()
		}
		if err != nil {
			return err
		}
		if err = w.WriteCommand(c); err != nil {
			return errors.Wrapf(err, "%s:%d", name, p.Line())
		}
	}
}
