package sseq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ParseError reports a malformed sequence file.
type ParseError struct {
	Line    int
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Token)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Read parses a sequence file.
//
// Format:
//
//	# comment lines start with '#'
//	>optional name
//	1, 1, 3
//	2 5
//
// Codes are separated by commas and/or whitespace and may span lines. The
// name line, when present, must come before the first code.
func Read(r io.Reader) (*Sequence, error) {
	var (
		name  string
		codes []int
		line  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if line == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		switch {
		case text == "", strings.HasPrefix(text, "#"):
			continue
		case strings.HasPrefix(text, ">"):
			if name != "" || len(codes) > 0 {
				return nil, &ParseError{Line: line, Message: "name line must come first"}
			}
			name = strings.TrimSpace(text[1:])
			continue
		}

		for _, tok := range splitCodes(text) {
			c, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Line: line, Token: tok, Message: "not an integer"}
			}
			if c < 1 {
				return nil, &ParseError{Line: line, Token: tok, Message: ErrNonPositiveCode.Error()}
			}
			codes = append(codes, c)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	return &Sequence{name: name, codes: codes}, nil
}

// Parse parses a sequence from a string. See Read for the format.
func Parse(text string) (*Sequence, error) {
	return Read(strings.NewReader(text))
}

// ReadFile parses the sequence file at path. The file's base name is used
// when the file carries no name line.
func ReadFile(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if s.name == "" {
		s.name = filepath.Base(path)
	}
	return s, nil
}

func splitCodes(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
