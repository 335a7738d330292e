// Package selfcheck runs the MD5 implementation against known answers and
// against itself across block-boundary lengths and ingestion patterns.
package selfcheck

import (
	stderrors "errors"
	"fmt"

	"github.com/princess-rosella/spu-md5/src/internal/config"
	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/md5"
)

// Ingestion modes reported in Case.Mode.
const (
	ModeOneShot  = "one-shot"
	ModeSplit    = "split"
	ModeBytewise = "bytewise"
	ModeChunked  = "chunked"
	ModeResume   = "resume"
	ModeFinalize = "finalize"
)

// BoundaryLengths are the message lengths around the 56-byte padding limit
// and the 64-byte block size.
var BoundaryLengths = []int{0, 1, 55, 56, 57, 63, 64, 65, 119, 120, 127, 128}

const chunkedStride = 7

// Case is the outcome of a single check.
type Case struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
	Passed   bool   `json:"passed"`
}

// Report collects the cases of one run.
type Report struct {
	Passed bool   `json:"passed"`
	Cases  []Case `json:"cases"`
}

func (r *Report) add(c Case) {
	c.Passed = c.Expected == c.Got
	if !c.Passed {
		log.Warnf("Self-check %s (%s) failed: expected %s, got %s", c.Name, c.Mode, c.Expected, c.Got)
	} else {
		log.Debugf("Self-check %s (%s) passed", c.Name, c.Mode)
	}
	r.Cases = append(r.Cases, c)
}

// Failed returns the cases that did not pass.
func (r Report) Failed() []Case {
	var failed []Case
	for _, c := range r.Cases {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Merge appends the cases of other to r.
func (r Report) Merge(other Report) Report {
	merged := Report{Cases: append(append([]Case{}, r.Cases...), other.Cases...)}
	merged.Passed = len(merged.Failed()) == 0
	return merged
}

// Err returns nil when every case passed, otherwise a MISMATCH_ERROR whose
// cause lists each failing case.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	causes := make([]error, 0, len(failed))
	for _, c := range failed {
		causes = append(causes, errors.NewMismatchError(c.Name+" ("+c.Mode+")", c.Expected, c.Got))
	}
	return errors.Wrap(errors.ErrCodeMismatch,
		fmt.Sprintf("%d of %d self-check cases failed", len(failed), len(r.Cases)),
		stderrors.Join(causes...))
}

// RunVectors hashes every vector one-shot and, when it is longer than four
// bytes, once more with the first byte fed separately.
func RunVectors(vectors []*config.Vector) Report {
	var report Report

	for _, v := range vectors {
		data, err := v.Bytes()
		if err != nil {
			report.add(Case{Name: v.Name, Mode: ModeOneShot, Expected: v.Expected, Got: err.Error()})
			continue
		}

		report.add(Case{Name: v.Name, Mode: ModeOneShot, Expected: v.Expected, Got: md5.Process(data)})

		if len(data) > 4 {
			report.add(Case{Name: v.Name, Mode: ModeSplit, Expected: v.Expected, Got: hashChunked(data, 1, len(data))})
		}
	}

	report.Passed = len(report.Failed()) == 0
	return report
}

// RunBoundaries compares one-shot hashing of each boundary length with
// byte-at-a-time, fixed-stride and resumed ingestion, and checks that
// finalization is idempotent and closes the digest.
func RunBoundaries() Report {
	var report Report

	for _, n := range BoundaryLengths {
		data := pattern(n)
		name := fmt.Sprintf("len=%d", n)
		want := md5.Process(data)

		report.add(Case{Name: name, Mode: ModeBytewise, Expected: want, Got: hashChunked(data, 1)})
		report.add(Case{Name: name, Mode: ModeChunked, Expected: want, Got: hashChunked(data, chunkedStride)})
		report.add(Case{Name: name, Mode: ModeResume, Expected: want, Got: hashResumed(data)})
		report.add(Case{Name: name, Mode: ModeFinalize, Expected: want, Got: checkFinalize(data)})
	}

	report.Passed = len(report.Failed()) == 0
	return report
}

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*31 + 7)
	}
	return data
}

// hashChunked feeds data in pieces. With one stride every piece has that
// length; with two, the first piece has the first stride and the rest the
// second.
func hashChunked(data []byte, strides ...int) string {
	d := md5.New()
	stride := strides[0]
	for len(data) > 0 {
		n := min(stride, len(data))
		if err := d.Update(data[:n]); err != nil {
			return err.Error()
		}
		data = data[n:]
		if len(strides) > 1 {
			stride = strides[1]
		}
	}
	return d.HexString()
}

func hashResumed(data []byte) string {
	half := len(data) / 2

	first := md5.New()
	if err := first.Update(data[:half]); err != nil {
		return err.Error()
	}
	state, err := first.MarshalBinary()
	if err != nil {
		return err.Error()
	}

	second := md5.New()
	if err := second.UnmarshalBinary(state); err != nil {
		return err.Error()
	}
	if err := second.Update(data[half:]); err != nil {
		return err.Error()
	}
	return second.HexString()
}

// checkFinalize returns the digest only if a second Finalize agrees with the
// first and further input is refused.
func checkFinalize(data []byte) string {
	d := md5.New()
	if err := d.Update(data); err != nil {
		return err.Error()
	}
	first := d.Finalize()
	if second := d.Finalize(); second != first {
		return "finalize not idempotent: " + md5.Hex(second)
	}
	if err := d.Update([]byte{0}); !stderrors.Is(err, md5.ErrFinalized) {
		return fmt.Sprintf("update after finalize returned %v", err)
	}
	return md5.Hex(first)
}
