package conn

import "fmt"

// Recorder captures writes in memory. It stands in for a HID device in
// tests and dry runs.
type Recorder struct {
	writes [][]byte
}

// Write records a copy of p.
func (r *Recorder) Write(p []byte) (int, error) {
	r.writes = append(r.writes, append([]byte(nil), p...))
	return len(p), nil
}

// Writes returns the recorded reports in write order.
func (r *Recorder) Writes() [][]byte {
	return r.writes
}

// Reset discards the recorded reports.
func (r *Recorder) Reset() {
	r.writes = nil
}

func (r *Recorder) String() string {
	return fmt.Sprintf("recorder with %d writes", len(r.writes))
}

func (r *Recorder) Close() error {
	return nil
}
