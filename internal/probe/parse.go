package probe

import (
	"errors"
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"strings"

	"github.com/stone-age-io/termfetch/internal/utils"
)

// Parser turns raw command output into a typed value
type Parser[T any] func(out string) (T, error)

// Then feeds the output of p into next
func Then[A, B any](p Parser[A], next func(A) (B, error)) Parser[B] {
	return func(out string) (B, error) {
		a, err := p(out)
		if err != nil {
			var zero B
			return zero, err
		}
		return next(a)
	}
}

// lines splits output on LF, dropping CR so wmic's CRLF output splits the same way
func lines(out string) []string {
	return strings.Split(strings.ReplaceAll(out, "\r", ""), "\n")
}

// Line selects the n-th line (zero-based) of the output, trimmed. Asking for line 1 of
// "Size\r\n536870912000\r\n" gives "536870912000".
func Line(n int) Parser[string] {
	return func(out string) (string, error) {
		ls := lines(out)
		if n >= len(ls) {
			return "", fmt.Errorf("expected at least %d lines of output, got %d", n+1, len(ls))
		}
		line := strings.TrimSpace(ls[n])
		if line == "" {
			return "", fmt.Errorf("line %d of output is empty", n+1)
		}
		return line, nil
	}
}

// Trimmed returns the whole output with surrounding whitespace removed
func Trimmed(out string) (string, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return "", errors.New("command produced no output")
	}
	return s, nil
}

// FirstLine returns the first non-empty line, trimmed
func FirstLine(out string) (string, error) {
	for _, l := range lines(out) {
		if s := strings.TrimSpace(l); s != "" {
			return s, nil
		}
	}
	return "", errors.New("command produced no output")
}

// Field selects the n-th whitespace-separated field (zero-based) of a line
func Field(n int) func(string) (string, error) {
	return func(line string) (string, error) {
		fields := strings.Fields(line)
		if n >= len(fields) {
			return "", fmt.Errorf("expected at least %d fields in %q", n+1, line)
		}
		return fields[n], nil
	}
}

// KeyValue finds the first line starting with key (e.g. "Model name:") and returns
// the trimmed remainder
func KeyValue(key string) Parser[string] {
	return func(out string) (string, error) {
		for _, l := range lines(out) {
			l = strings.TrimSpace(l)
			if strings.HasPrefix(l, key) {
				if v := strings.TrimSpace(strings.TrimPrefix(l, key)); v != "" {
					return v, nil
				}
			}
		}
		return "", fmt.Errorf("no %q line in output", key)
	}
}

// Int parses a decimal integer
func Int(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", s)
	}
	return n, nil
}

// Uint parses a non-negative byte or block count
func Uint(s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a non-negative integer, got %q", s)
	}
	return n, nil
}

// GiBFromBytes parses a byte count and converts it to GiB, unrounded
func GiBFromBytes(s string) (float64, error) {
	n, err := Uint(s)
	if err != nil {
		return 0, err
	}
	return utils.BytesToGiB(float64(n)), nil
}

// GiBFromKiB parses a KiB count and converts it to GiB, unrounded
func GiBFromKiB(s string) (float64, error) {
	n, err := Uint(s)
	if err != nil {
		return 0, err
	}
	return utils.KiBToGiB(float64(n)), nil
}

// RoundedGiBFromBytes parses a byte count and rounds it to whole GiB, the way
// [Math]::Round(TotalPhysicalMemory/1GB) does
func RoundedGiBFromBytes(s string) (int, error) {
	gib, err := GiBFromBytes(s)
	if err != nil {
		return 0, err
	}
	return int(math.Round(gib)), nil
}

// Address picks the first whitespace-separated token of the wanted family
// (IPv4 when v6 is false). Link-local IPv6 addresses are skipped.
func Address(v6 bool) func(string) (string, error) {
	return func(out string) (string, error) {
		for _, tok := range strings.Fields(out) {
			// ifconfig prints "fe80::1%en0" and "addr:10.0.0.2" style tokens
			tok = strings.TrimPrefix(tok, "addr:")
			if i := strings.IndexByte(tok, '%'); i >= 0 {
				tok = tok[:i]
			}
			if i := strings.IndexByte(tok, '/'); i >= 0 {
				tok = tok[:i]
			}
			addr, err := netip.ParseAddr(tok)
			if err != nil || addr.IsLoopback() {
				continue
			}
			if v6 && addr.Is6() && !addr.Is4In6() && !addr.IsLinkLocalUnicast() {
				return addr.String(), nil
			}
			if !v6 && addr.Is4() {
				return addr.String(), nil
			}
		}
		family := "IPv4"
		if v6 {
			family = "IPv6"
		}
		return "", fmt.Errorf("no %s address in output", family)
	}
}
