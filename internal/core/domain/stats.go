package domain

// Stats is a snapshot of the synchronizer's progress counters.
type Stats struct {
	// Pairs is the number of chunk pairs emitted so far.
	Pairs int64
	// LeftRecords and RightRecords count complete records emitted per
	// side. They are equal on every synchronized pair; they diverge
	// only when a lenient drain emits one-sided chunks.
	LeftRecords  int64
	RightRecords int64
	// LeftBytes and RightBytes count trimmed payload bytes emitted.
	LeftBytes  int64
	RightBytes int64
}
