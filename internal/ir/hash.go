package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainStructure  = "sernalign/structure/v1"
	DomainComparison = "sernalign/comparison/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StructureID computes the content-addressed ID of a structural sequence.
// Two files holding the same codes share an ID whatever their names.
func StructureID(codes []int) (string, error) {
	list := make([]any, len(codes))
	for i, c := range codes {
		list[i] = c
	}

	canonical, err := MarshalCanonical(map[string]any{
		"codes": list,
	})
	if err != nil {
		return "", fmt.Errorf("StructureID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainStructure, canonical), nil
}

// ComparisonID computes the content-addressed ID of an alignment between
// two structures under a constraints setting. The algorithm version is part
// of the identity so cached distances never outlive a cost-model change.
func ComparisonID(leftID, rightID string, constraints bool) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"left":        leftID,
		"right":       rightID,
		"constraints": constraints,
		"algorithm":   AlgorithmVersion,
	})
	if err != nil {
		return "", fmt.Errorf("ComparisonID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainComparison, canonical), nil
}

// MustStructureID is like StructureID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustStructureID(codes []int) string {
	id, err := StructureID(codes)
	if err != nil {
		panic(err)
	}
	return id
}

// MustComparisonID is like ComparisonID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustComparisonID(leftID, rightID string, constraints bool) string {
	id, err := ComparisonID(leftID, rightID, constraints)
	if err != nil {
		panic(err)
	}
	return id
}
