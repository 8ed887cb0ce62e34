package smi

// MismatchRecorder accumulates mismatches up to a cap while counting every one.
//
// A MismatchRecorder is not safe for concurrent use. Each comparison owns its own.
type MismatchRecorder struct {
	max           int
	includeValues bool
	total         int
	records       []Mismatch
}

// NewMismatchRecorder returns a recorder keeping at most max records.
// A negative max is treated as zero.
func NewMismatchRecorder(max int, includeValues bool) *MismatchRecorder {
	if max < 0 {
		max = 0
	}
	return &MismatchRecorder{
		max:           max,
		includeValues: includeValues,
		records:       make([]Mismatch, 0, min(max, 64)),
	}
}

// Record counts a mismatch and keeps it if the cap has not been reached.
// rpc and bytecode are dropped when values are not included.
func (r *MismatchRecorder) Record(path, reason string, rpc, bytecode any) {
	r.total++
	if len(r.records) >= r.max {
		return
	}
	if !r.includeValues {
		rpc, bytecode = nil, nil
	}
	r.records = append(r.records, Mismatch{
		Path:     path,
		Reason:   reason,
		RPC:      rpc,
		Bytecode: bytecode,
	})
}

// Total is the number of mismatches recorded, including those beyond the cap.
func (r *MismatchRecorder) Total() int { return r.total }

// Mismatches returns the kept records in discovery order. The slice is never nil.
func (r *MismatchRecorder) Mismatches() []Mismatch { return r.records }

// Truncated reports whether mismatches were dropped because of the cap.
func (r *MismatchRecorder) Truncated() bool { return r.total > len(r.records) }
