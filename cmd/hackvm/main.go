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

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/hashcatHitman/hack-vm-translator/asm"
	"github.com/hashcatHitman/hack-vm-translator/vm"
)

var (
	outFileName string
	bootstrap   bool
	comments    bool
	debug       bool
)

// unitName derives the logical translation unit name from a source path:
// the base name without the .vm extension.
func unitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sources resolves the input argument to the list of .vm files to translate
// and the default output path. A directory translates all its .vm files, in
// lexical order, into <dir>/<dir>.asm; a single Foo.vm translates into
// Foo.asm next to it.
func sources(path string) (files []string, out string, err error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "stat failed")
	}
	if !st.IsDir() {
		if filepath.Ext(path) != ".vm" {
			return nil, "", errors.Errorf("%v: not a .vm file", path)
		}
		return []string{path}, strings.TrimSuffix(path, ".vm") + ".asm", nil
	}
	files, err = filepath.Glob(filepath.Join(path, "*.vm"))
	if err != nil {
		return nil, "", errors.Wrap(err, "glob failed")
	}
	if len(files) == 0 {
		return nil, "", errors.Errorf("%v: no .vm files found", path)
	}
	sort.Strings(files)
	out = filepath.Join(path, filepath.Base(path)+".asm")
	return files, out, nil
}

// dumpCommands parses the unit a second time and dumps the command values
// to stderr. Debug aid only; parse errors are reported by the translation
// pass proper.
func dumpCommands(name string, r io.Reader) {
	p := vm.NewParser(name, r)
	for {
		c, err := p.Next()
		if err != nil {
			return
		}
		fmt.Fprintf(os.Stderr, "%s:%d: ", name, p.Line())
		spew.Fdump(os.Stderr, c)
	}
}

func run(path string) error {
	files, out, err := sources(path)
	if err != nil {
		return err
	}

	// the whole program is generated in memory first so that a failed run
	// leaves no partial .asm file behind
	var buf bytes.Buffer
	w := asm.NewWriter(&buf, asm.Comments(comments))

	if len(files) > 1 || bootstrap {
		if err = w.WriteBootstrap(); err != nil {
			return err
		}
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return errors.Wrap(err, "read failed")
		}
		name := unitName(f)
		if debug {
			dumpCommands(name, bytes.NewReader(src))
		}
		if err = asm.Translate(name, bytes.NewReader(src), w); err != nil {
			return err
		}
	}

	if outFileName != "" {
		out = outFileName
	}
	return errors.Wrapf(os.WriteFile(out, buf.Bytes(), 0644), "%v", out)
}

func main() {
	flag.StringVar(&outFileName, "o", "", "write output to `filename` instead of the default")
	flag.BoolVar(&bootstrap, "bootstrap", false, "emit the bootstrap code even for a single file")
	flag.BoolVar(&comments, "comments", false, "annotate the output with the source commands")
	flag.BoolVar(&debug, "debug", false, "dump parsed commands to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [options] file.vm|directory\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}
