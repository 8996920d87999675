// Copyright © 2020 The Thorium Authors under an MIT-style license.

// Package loc has routines for tracking file locations.
package loc

import (
	"fmt"
	"strings"
)

// A Range is a start and end byte offset.
type Range [2]int

// GetRange returns itself.
// This is useful so than Range can be embedded in a struct
// and that struct can implement interface{GetRange() Range}.
func (r Range) GetRange() Range { return r }

// A Loc describes a file location.
// Lines and columns are 1-based; the end column is inclusive.
type Loc struct {
	Path string
	Line [2]int
	Col  [2]int
}

func (l Loc) String() string {
	switch {
	case l.Line[0] == l.Line[1] && l.Col[0] == l.Col[1]:
		return fmt.Sprintf("%s:%d.%d", l.Path, l.Line[0], l.Col[0])
	default:
		return fmt.Sprintf("%s:%d.%d-%d.%d", l.Path, l.Line[0], l.Col[0], l.Line[1], l.Col[1])
	}
}

// A Pos is the source position of a node:
// its Loc and the text of the lines it spans.
type Pos struct {
	Loc
	Lines []string
}

// Multiline returns whether the position spans more than one line.
func (p Pos) Multiline() bool { return p.Line[0] != p.Line[1] }

// Files tracks locations within a set of files.
type Files []File

// A File is a single file in a Files.
type File struct {
	Path  string
	Offs  int
	Len   int
	Lines []int
	Text  string
}

// Len returns the total length of all files.
func (fs Files) Len() int {
	if len(fs) == 0 {
		return 0
	}
	last := fs[len(fs)-1]
	return last.Offs + last.Len
}

// Add adds a new file to the set given its path and text.
// It returns the offset of the start of the file.
func (fs *Files) Add(path, text string) int {
	var lines []int
	offs := fs.Len()
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, offs+i)
		}
	}
	*fs = append(*fs, File{
		Path:  path,
		Offs:  offs,
		Len:   len(text),
		Lines: lines,
		Text:  text,
	})
	return offs
}

// Loc returns the Loc for a range of the file set.
func (fs Files) Loc(r Range) *Loc {
	if len(fs) == 0 || r[0] < 0 || r[1] > fs.Len() {
		return nil
	}
	var l Loc
	var spath, epath string
	spath, l.Line[0], l.Col[0] = fs.loc1(r[0])
	epath, l.Line[1], l.Col[1] = fs.loc1(end(r))
	if spath != epath {
		panic("impossible")
	}
	l.Path = spath
	return &l
}

// Pos returns the Pos for a range of the file set.
func (fs Files) Pos(r Range) *Pos {
	l := fs.Loc(r)
	if l == nil {
		return nil
	}
	f := fs.file(r[0])
	all := strings.Split(f.Text, "\n")
	var lines []string
	for i := l.Line[0]; i <= l.Line[1] && i <= len(all); i++ {
		lines = append(lines, strings.TrimSuffix(all[i-1], "\r"))
	}
	return &Pos{Loc: *l, Lines: lines}
}

// end returns the offset of the last byte of a non-empty range.
func end(r Range) int {
	if r[1] > r[0] {
		return r[1] - 1
	}
	return r[0]
}

func (fs Files) file(p int) File {
	file := fs[0]
	for _, f := range fs {
		if f.Offs > p {
			break
		}
		file = f
	}
	return file
}

func (fs Files) loc1(p int) (string, int, int) {
	file := fs.file(p)
	line, col1 := 1, file.Offs-1
	for _, nl := range file.Lines {
		if nl >= p {
			break
		}
		col1 = nl
		line++
	}
	return file.Path, line, p - col1
}
