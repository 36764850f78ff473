package config

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

// Defaults used when a key is absent from the config file or its value is
// invalid. Overrides belong in the config file, not here.
const (
	DefaultAccess           = "755"
	DefaultTempPattern      = `.*(\.tmp|~)`
	DefaultTrickyLetters    = ":\".,;*?$#`|'\\"
	DefaultTrickySubstitute = "_"
)

// Values holds the raw string values read from the config file. An empty
// field means the key was absent.
type Values struct {
	Access           string
	TempPattern      string
	TrickyLetters    string
	TrickySubstitute string
}

// Path returns the resolved path to the config file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "sweep", "config")
}

// Load reads the config file from the XDG path. Returns zero Values
// (no error) if the file does not exist. The config file is always optional.
func Load() (Values, error) {
	f, err := os.Open(Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Values{}, nil
		}
		return Values{}, err
	}
	defer f.Close()
	return Parse(f), nil
}

// Parse reads one `key = value` pair per line. The first `=` is the
// delimiter, surrounding whitespace is trimmed, and malformed lines are
// silently skipped.
func Parse(r io.Reader) Values {
	var v Values
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "access":
			v.Access = value
		case "tmp_files":
			v.TempPattern = value
		case "tricky_letters":
			v.TrickyLetters = value
		case "tricky_letters_substitute":
			v.TrickySubstitute = value
		}
	}
	return v
}

// CheckAccess validates a permission value: exactly three digits, each 0-7.
// Invalid values fall back to the documented default rather than failing.
func CheckAccess(value string) string {
	if len(value) != 3 {
		return DefaultAccess
	}
	for _, c := range value {
		if c < '0' || c > '7' {
			return DefaultAccess
		}
	}
	return value
}

// AccessMode converts a checked three-octal-digit string into permission
// bits.
func AccessMode(value string) os.FileMode {
	n, err := strconv.ParseUint(CheckAccess(value), 8, 32)
	if err != nil {
		n, _ = strconv.ParseUint(DefaultAccess, 8, 32)
	}
	return os.FileMode(n)
}

// CheckSubstitute validates the tricky-letter substitute: a single character
// that is neither a path separator nor NUL. Invalid values fall back to the
// default.
func CheckSubstitute(value string) string {
	if utf8.RuneCountInString(value) != 1 || value == "/" || value == "\x00" {
		return DefaultTrickySubstitute
	}
	return value
}

// CompilePattern compiles the temporary-file pattern, substituting the
// default when the value is empty or does not compile.
func CompilePattern(value string) *regexp.Regexp {
	if value == "" {
		return regexp.MustCompile(DefaultTempPattern)
	}
	re, err := regexp.Compile(value)
	if err != nil {
		slog.Warn("invalid tmp_files pattern, using default", "pattern", value, "error", err)
		return regexp.MustCompile(DefaultTempPattern)
	}
	return re
}
