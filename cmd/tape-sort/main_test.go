package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/lanrat/tapesort/tape"
)

// setupDirs points the flag-controlled paths into the test's directory and
// returns the scratch directory.
func setupDirs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	scratch := filepath.Join(dir, "tmp")

	oldConfig, oldTmp := *configPath, *tmpDir
	*configPath = filepath.Join(dir, "no-config.txt")
	*tmpDir = scratch
	t.Cleanup(func() {
		*configPath = oldConfig
		*tmpDir = oldTmp
	})
	return scratch
}

func writeCells(t *testing.T, path string, cells []int32) {
	t.Helper()
	buf := make([]byte, 0, len(cells)*tape.CellSize)
	for _, v := range cells {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
}

func readCells(t *testing.T, path string) []int32 {
	t.Helper()
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cells := make([]int32, 0, len(buf)/tape.CellSize)
	for i := 0; i+tape.CellSize <= len(buf); i += tape.CellSize {
		cells = append(cells, int32(binary.LittleEndian.Uint32(buf[i:])))
	}
	return cells
}

func TestRunExternalSort(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")
	writeCells(t, in, []int32{5, 4, 3, 2, 1})

	// an 8-byte budget holds two cells, forcing the recursive path
	if err := run([]string{in, out, "5", "8"}); err != nil {
		t.Fatal(err)
	}
	if got := readCells(t, out); !slices.Equal(got, []int32{1, 2, 3, 4, 5}) {
		t.Errorf("output %v", got)
	}

	// the scratch files are gone
	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d scratch files left behind", len(entries))
	}

	// the input survived
	if got := readCells(t, in); !slices.Equal(got, []int32{5, 4, 3, 2, 1}) {
		t.Errorf("input modified: %v", got)
	}
}

func TestRunInMemorySort(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")
	writeCells(t, in, []int32{3, -1, 2})

	// a generous budget keeps the whole sort in memory
	if err := run([]string{in, out, "3", "4096"}); err != nil {
		t.Fatal(err)
	}
	if got := readCells(t, out); !slices.Equal(got, []int32{-1, 2, 3}) {
		t.Errorf("output %v", got)
	}

	// the in-memory path never stages scratch tapes
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Error("scratch directory created on the in-memory path")
	}
}

func TestRunDefaultTapeSize(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")
	writeCells(t, in, []int32{9, 8, 7, 6})

	if err := run([]string{in, out}); err != nil {
		t.Fatal(err)
	}
	if got := readCells(t, out); !slices.Equal(got, []int32{6, 7, 8, 9}) {
		t.Errorf("output %v", got)
	}
}

func TestRunEmptyInput(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")
	writeCells(t, in, nil)

	if err := run([]string{in, out}); err != nil {
		t.Fatal(err)
	}
	if got := readCells(t, out); len(got) != 0 {
		t.Errorf("output %v, expected empty", got)
	}
}

func TestRunDiscardsUnalignedTail(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")
	writeCells(t, in, []int32{2, 1})
	f, err := os.OpenFile(in, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte{0xff}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := run([]string{in, out}); err != nil {
		t.Fatal(err)
	}
	if got := readCells(t, out); !slices.Equal(got, []int32{1, 2}) {
		t.Errorf("output %v", got)
	}
}

func TestRunArgumentErrors(t *testing.T) {
	setupDirs(t)
	cases := [][]string{
		{},
		{"only-one"},
		{"a", "b", "c", "d", "e"},
		{"in", "out", "-1"},
		{"in", "out", "abc"},
		{"in", "out", "5", "-1"},
		{"in", "out", "5", "xyz"},
	}
	for _, args := range cases {
		if err := run(args); err == nil {
			t.Errorf("run(%v) must fail", args)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	if err := run([]string{filepath.Join(dir, "absent.bin"), filepath.Join(dir, "out.bin")}); err == nil {
		t.Error("a missing input file must fail")
	}
}

func TestRunMalformedConfigIsFatal(t *testing.T) {
	scratch := setupDirs(t)
	dir := filepath.Dir(scratch)
	if err := os.WriteFile(*configPath, []byte("read-delay nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")
	writeCells(t, in, []int32{1})

	if err := run([]string{in, out}); err == nil {
		t.Error("a malformed config must fail")
	}
}
