package quality

import "fmt"

// Clamp enforces the per-site maximum achievable grade. Records above the
// ceiling are lowered to it, their tag gains a ", LIM" suffix and their
// details name the ceiling. A nil ceiling is a no-op. Idempotent.
func Clamp(qc QCSeries, maxQC *int) QCSeries {
	if maxQC == nil {
		return qc
	}

	out := make(QCSeries, len(qc))
	copy(out, qc)
	for i, r := range out {
		if r.Grade <= *maxQC {
			continue
		}
		out[i].Grade = *maxQC
		out[i].Code = r.Code + ", LIM"
		out[i].Details = r.Details + fmt.Sprintf(" [Site QC limit applies to a maximum of %d.]", *maxQC)
	}
	return out
}
