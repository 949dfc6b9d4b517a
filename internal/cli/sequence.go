package cli

import (
	"fmt"
	"os"

	"github.com/roach88/sernalign/internal/sseq"
)

// loadSequence reads arg as a sequence file when such a file exists, and
// parses it as an inline code list ("1,1,3" or "1 1 3") otherwise.
func loadSequence(arg string) (*sseq.Sequence, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return sseq.ReadFile(arg)
	}

	s, err := sseq.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a sequence file nor a code list: %w", arg, err)
	}
	return s, nil
}

// codesOf returns the codes of s, never nil.
func codesOf(s *sseq.Sequence) []int {
	codes := s.Codes()
	if codes == nil {
		return []int{}
	}
	return codes
}
