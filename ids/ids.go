// Package ids defines the opaque identifier types used across the
// trust protocol: 32-byte node identifiers, Blake3-derived capability
// identifiers, and the workflow/task/step identifiers issued by the
// orchestration layer.
package ids

import (
	"bytes"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// Size is the byte length of a NodeId.
const Size = 32

// NodeID is a 32-byte opaque identifier with total ordering by byte
// sequence.
type NodeID [Size]byte

// Empty is the zero NodeID.
var Empty NodeID

// NodeIDFromIndex deterministically derives a NodeID from a small
// integer index, used by simulation scenarios to mint node identities
// (mirrors symbiont-core's NodeId::from_index).
func NodeIDFromIndex(i uint64) NodeID {
	var id NodeID
	for b := 0; b < 8; b++ {
		id[Size-1-b] = byte(i >> (8 * b))
	}
	return id
}

// Less reports whether id sorts before other under byte-sequence
// ordering.
func (id NodeID) Less(other NodeID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// String returns the full lowercase hex encoding.
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// ShortHex returns the first n hex characters, used by CSV export to
// keep node_id columns narrow.
func (id NodeID) ShortHex(n int) string {
	s := id.String()
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// CapabilityID is derived deterministically from a capability's name:
// the first 8 bytes of Blake3(name). Equal names always yield equal
// ids.
type CapabilityID [8]byte

// CapabilityIDFromName computes the deterministic id for a capability
// name.
func CapabilityIDFromName(name string) CapabilityID {
	sum := blake3.Sum256([]byte(name))
	var id CapabilityID
	copy(id[:], sum[:8])
	return id
}

func (id CapabilityID) String() string {
	return hex.EncodeToString(id[:])
}

// Hash is a 32-byte Blake3 digest, used as evidence and handoff
// integrity tags.
type Hash [32]byte

// ComputeHash returns the Blake3 digest of payload.
func ComputeHash(payload []byte) Hash {
	return Hash(blake3.Sum256(payload))
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Signature is a 64-byte opaque tag. Verification is a stub per the
// protocol's Non-goals: no real cryptographic signing is implemented.
type Signature [64]byte

// WorkflowID and TaskID are randomly generated identifiers:
// unlike NodeID/CapabilityID, nothing about a workflow or task name
// determines its identity, so a random UUID is the idiomatic choice
// (the engine never needs name→id determinism for these).
type WorkflowID uuid.UUID

// NewWorkflowID mints a fresh random workflow identifier.
func NewWorkflowID() WorkflowID { return WorkflowID(uuid.New()) }

func (w WorkflowID) String() string { return uuid.UUID(w).String() }

type TaskID uuid.UUID

func NewTaskID() TaskID { return TaskID(uuid.New()) }

func (t TaskID) String() string { return uuid.UUID(t).String() }

// StepID is small and sequential within a workflow rather than a UUID:
// steps are addressed by position, and a plain int keeps dependency
// lists (depends_on) trivially comparable.
type StepID int
