// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "fmt"

type compositeState uint8

const (
	stateFresh compositeState = iota
	stateOpen
	stateFinished
)

// composite is the shared Fresh→Open→Finished lifecycle behind arrays,
// maps, and chunked strings. It is parameterized by the major type of
// the header it emits and by how many children one declared entry
// accounts for (arrays and chunked strings: 1, maps: 2, since the
// header counts key/value pairs).
//
// The length discipline is committed exactly once, on the transition
// to Open: a size declared while Fresh produces a definite-length
// header and arms the remaining-count bookkeeping; otherwise the
// writer's SizePolicy decides between an indefinite header and
// ErrSizeRequired.
type composite struct {
	w     *Writer
	major MajorType
	kind  string // for error context
	state compositeState

	// declared is the entry count declared while Fresh, -1 for none.
	declared int64

	// remaining is the child budget left, -1 for unbounded.
	remaining int64

	perEntry        int64
	indefinite      bool
	forceIndefinite bool // chunked strings: indefinite by construction
}

func (c *composite) init(w *Writer, major MajorType, perEntry int64, kind string) {
	c.w = w
	c.major = major
	c.perEntry = perEntry
	c.kind = kind
	c.declared = -1
	c.remaining = -1
}

func (c *composite) declareSize(n int) error {
	if c.state != stateFresh || c.declared >= 0 {
		return fmt.Errorf("cbor: %s: %w", c.kind, ErrSizeRedeclared)
	}
	if n < 0 {
		return fmt.Errorf("cbor: %s: negative size %d", c.kind, n)
	}
	c.declared = int64(n)
	return nil
}

// open commits the length discipline and emits the header.
func (c *composite) open() error {
	indefinite := c.forceIndefinite || c.w.policy == SizeAlways || c.declared < 0
	if indefinite {
		if !c.forceIndefinite && c.declared < 0 && c.w.policy == SizeRequired {
			return fmt.Errorf("cbor: %s: %w", c.kind, ErrSizeRequired)
		}
		c.w.scratch = AppendIndefiniteHeader(c.w.scratch[:0], c.major)
		if err := c.w.flushScratch(); err != nil {
			return err
		}
		c.indefinite = true
	} else {
		if err := c.w.writeHeader(c.major, uint64(c.declared)); err != nil {
			return err
		}
	}
	// Under SizeAlways a declared count never reaches the wire but is
	// still enforced as an exact child budget.
	if c.declared >= 0 {
		c.remaining = c.declared * c.perEntry
	}
	c.state = stateOpen
	return nil
}

// child accounts for one child value and returns the writer the caller
// uses to emit it. The first call transitions Fresh→Open.
func (c *composite) child() (*Writer, error) {
	switch c.state {
	case stateFresh:
		if err := c.open(); err != nil {
			return nil, err
		}
	case stateFinished:
		return nil, fmt.Errorf("cbor: %s: %w", c.kind, ErrFinished)
	}
	if c.remaining == 0 {
		return nil, fmt.Errorf("cbor: %s: %w", c.kind, ErrSizeExceeded)
	}
	if c.remaining > 0 {
		c.remaining--
	}
	return c.w, nil
}

func (c *composite) finish() error {
	switch c.state {
	case stateFresh:
		if err := c.open(); err != nil {
			return err
		}
	case stateFinished:
		return fmt.Errorf("cbor: %s: %w", c.kind, ErrFinished)
	}
	c.state = stateFinished
	if c.remaining > 0 {
		return fmt.Errorf("cbor: %s: %w: %d children unwritten", c.kind, ErrSizeUnderrun, c.remaining)
	}
	if c.indefinite {
		c.w.scratch = AppendBreak(c.w.scratch[:0])
		return c.w.flushScratch()
	}
	return nil
}

// ArrayWriter emits one array. Obtain it from Writer.OpenArray, write
// each element through the writer returned by Element, then call
// Finish.
type ArrayWriter struct {
	c composite
}

// DeclareSize fixes the element count, selecting definite-length
// encoding (unless the policy is SizeAlways). Must be called before
// the first Element; afterwards it fails with ErrSizeRedeclared.
func (a *ArrayWriter) DeclareSize(n int) error {
	return a.c.declareSize(n)
}

// Element returns the writer for the next element. The element's value
// must be completely written before the array is used again.
func (a *ArrayWriter) Element() (*Writer, error) {
	return a.c.child()
}

// Finish terminates the array: the break byte for indefinite encoding,
// or a count check (ErrSizeUnderrun) for definite encoding.
func (a *ArrayWriter) Finish() error {
	return a.c.finish()
}

// MapWriter emits one map. Entries are written either as explicit
// Key/Value pairs or through the Field convenience; the two protocols
// must not be mixed within a single entry (the writer cannot detect
// the mix, which corrupts the stream).
type MapWriter struct {
	c composite
}

// DeclareSize fixes the entry (pair) count. Must be called before the
// first entry; afterwards it fails with ErrSizeRedeclared.
func (m *MapWriter) DeclareSize(n int) error {
	return m.c.declareSize(n)
}

// Key returns the writer for the next entry's key. It must be followed
// by exactly one Value.
func (m *MapWriter) Key() (*Writer, error) {
	return m.c.child()
}

// Value returns the writer for the value paired with the preceding
// Key.
func (m *MapWriter) Value() (*Writer, error) {
	return m.c.child()
}

// Field writes the entry key for name (the integer label when the
// writer's label table maps it, the literal text otherwise) and
// returns the writer for the entry's value.
func (m *MapWriter) Field(name string) (*Writer, error) {
	key, err := m.c.child()
	if err != nil {
		return nil, err
	}
	if key.labels != nil {
		if label, ok := key.labels.Label(name); ok {
			if err := key.WriteInt(label); err != nil {
				return nil, err
			}
			return m.c.child()
		}
	}
	if err := key.WriteText(name); err != nil {
		return nil, err
	}
	return m.c.child()
}

// Finish terminates the map, with the same semantics as
// ArrayWriter.Finish.
func (m *MapWriter) Finish() error {
	return m.c.finish()
}

// ChunkedWriter emits one indefinite-length text or byte string as a
// sequence of definite-length chunks terminated by a break byte.
// Chunk boundaries are caller-chosen and carry no meaning; a decoder
// sees the concatenation. The writer's SizePolicy does not apply:
// requesting the chunked form is itself the choice of indefinite
// length.
type ChunkedWriter struct {
	c composite
}

// Chunk emits one chunk. An empty chunk is legal and still opens the
// string.
func (c *ChunkedWriter) Chunk(p []byte) error {
	w, err := c.c.child()
	if err != nil {
		return err
	}
	return w.writeString(c.c.major, p)
}

// ChunkString emits one chunk from a string without forcing the caller
// to convert.
func (c *ChunkedWriter) ChunkString(s string) error {
	w, err := c.c.child()
	if err != nil {
		return err
	}
	if err := w.writeHeader(c.c.major, uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.write([]byte(s))
}

// Finish emits the break byte. A chunked string finished with zero
// chunks encodes as the indefinite header immediately followed by the
// break.
func (c *ChunkedWriter) Finish() error {
	return c.c.finish()
}
