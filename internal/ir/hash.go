package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainProgram = "tapevm/program/v1"
	DomainRun     = "tapevm/run/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramHash computes the content-addressed identity of program source.
// Identical source bytes always hash identically, comments included.
func ProgramHash(src []byte) string {
	return hashWithDomain(DomainProgram, src)
}

// RunRecord is the deterministic part of one execution: everything a replay
// must reproduce byte for byte.
type RunRecord struct {
	ProgramHash string
	Input       []byte
	Output      []byte
	Steps       int64
	ErrorCode   string // empty on success
}

// Canonical returns the record as an IRObject.
func (r RunRecord) Canonical() IRObject {
	return IRObject{
		"program_hash": IRString(r.ProgramHash),
		"input":        HexBytes(r.Input),
		"output":       HexBytes(r.Output),
		"steps":        IRInt(r.Steps),
		"error_code":   IRString(r.ErrorCode),
	}
}

// ResultHash computes the content-addressed identity of a run outcome.
// Two executions of the same program and input must produce the same hash;
// replay uses this to verify determinism.
func ResultHash(r RunRecord) (string, error) {
	canonical, err := MarshalCanonical(r.Canonical())
	if err != nil {
		return "", fmt.Errorf("ResultHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRun, canonical), nil
}

// MustResultHash is like ResultHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustResultHash(r RunRecord) string {
	h, err := ResultHash(r)
	if err != nil {
		panic(err)
	}
	return h
}
