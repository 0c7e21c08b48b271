package store

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// The backing format is split-on-comma with no quoting: the first line is a
// header, every later line is one record, and files never end with a
// trailing newline. encoding/csv is deliberately not used because its
// quoting rules would change the on-disk format.

// readRows reads every data line of the header-first delimited file at path
// and splits it on commas. Rows whose field count differs from want are
// skipped. A missing or unreadable file yields an empty result; the fault is
// logged, not returned, so the caller cannot distinguish it from an empty
// file.
func readRows(path string, want int) [][]string {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("store: cannot open file", "path", path, "err", err)
		return nil
	}
	defer f.Close()

	var (
		rows    [][]string
		skipped int
		lineNo  int
		header  = true
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lineNo++
		if header {
			header = false
			continue
		}
		fields := strings.Split(sc.Text(), ",")
		if len(fields) != want {
			slog.Debug("store: skipping malformed row", "path", path, "line", lineNo)
			skipped++
			continue
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		slog.Warn("store: read failed, returning partial result", "path", path, "err", err)
	}
	if skipped > 0 {
		slog.Warn("store: skipped malformed rows", "path", path, "count", skipped)
	}
	return rows
}

// appendRow appends one record line to the file at path, writing the header
// first when the file is new or empty. Lines are written newline-first so
// the file keeps its no-trailing-newline shape.
func appendRow(path, header, row string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var b strings.Builder
	if info.Size() == 0 {
		b.WriteString(header)
	}
	b.WriteString("\n")
	b.WriteString(row)

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

// rewriteAll replaces the file at path with the header plus the given rows,
// discarding the previous content entirely.
func rewriteAll(path, header string, rows []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening %s for rewrite: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rows {
		if _, err := w.WriteString("\n" + row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ensureFile creates the file at path with just its header line if it does
// not exist yet.
func ensureFile(path, header string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}

// atoi parses a record field as an integer, reporting failure instead of
// returning an error so scan loops can skip unparseable rows.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// swallow logs a write fault and drops it. Store-layer I/O faults are
// diagnostics, not caller-visible failures; the business layer only ever
// sees business-rule violations.
func swallow(op string, err error) error {
	if err != nil {
		slog.Error("store: write failed", "op", op, "err", err)
	}
	return nil
}
