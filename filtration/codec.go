package filtration

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the compression applied to a filtration file.
type Codec int

const (
	// CodecNone writes the raw stream.
	CodecNone Codec = iota
	// CodecZstd frames the stream with zstandard.
	CodecZstd
	// CodecLZ4 frames the stream with lz4.
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// The .flt format: the magic, a version byte and the field characteristic as
// uvarint, then one marker-prefixed record per simplex. Integers are
// uvarints, filtration values fixed 8-byte little endian. The whole stream
// may be wrapped in a zstd or lz4 frame; readers detect that by the frame
// magic.
const (
	formatMagic   = "TFLT"
	formatVersion = 1

	recordMarker = 0x01

	// maxRecordFaces bounds the boundary length accepted by the reader, so a
	// corrupt length prefix cannot force an oversized allocation.
	maxRecordFaces = 1 << 20
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Writer emits filtration records to a .flt stream.
type Writer struct {
	buf     *bufio.Writer
	closer  io.Closer
	scratch [binary.MaxVarintLen64]byte
}

// NewWriter starts a .flt stream on w for the given field characteristic.
// Close must be called to flush the compression frame.
func NewWriter(w io.Writer, characteristic uint32, codec Codec) (*Writer, error) {
	var (
		inner  io.Writer = w
		closer io.Closer
	)

	switch codec {
	case CodecNone:
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		inner, closer = zw, zw
	case CodecLZ4:
		lw := lz4.NewWriter(w)
		inner, closer = lw, lw
	default:
		return nil, ErrUnknownCodec
	}

	fw := &Writer{buf: bufio.NewWriter(inner), closer: closer}

	if _, err := fw.buf.WriteString(formatMagic); err != nil {
		return nil, err
	}
	if err := fw.buf.WriteByte(formatVersion); err != nil {
		return nil, err
	}
	if err := fw.uvarint(uint64(characteristic)); err != nil {
		return nil, err
	}

	return fw, nil
}

// Write appends one record to the stream.
func (w *Writer) Write(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if err := w.buf.WriteByte(recordMarker); err != nil {
		return err
	}

	if err := w.uvarint(rec.ID); err != nil {
		return err
	}
	if err := w.uvarint(uint64(rec.Dim)); err != nil {
		return err
	}
	if err := w.uvarint(uint64(len(rec.Boundary))); err != nil {
		return err
	}
	for _, face := range rec.Boundary {
		if err := w.uvarint(face); err != nil {
			return err
		}
	}

	if len(rec.Coefficients) == 0 {
		if err := w.buf.WriteByte(0); err != nil {
			return err
		}
	} else {
		if err := w.buf.WriteByte(1); err != nil {
			return err
		}
		for _, c := range rec.Coefficients {
			if err := w.buf.WriteByte(byte(c)); err != nil {
				return err
			}
		}
	}

	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], math.Float64bits(rec.Value))
	_, err := w.buf.Write(val[:])

	return err
}

// Close flushes the stream and finishes the compression frame, if any.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}

	if w.closer != nil {
		return w.closer.Close()
	}

	return nil
}

func (w *Writer) uvarint(v uint64) error {
	n := binary.PutUvarint(w.scratch[:], v)
	_, err := w.buf.Write(w.scratch[:n])

	return err
}

// Reader decodes a .flt stream, transparently unwrapping zstd and lz4
// frames.
type Reader struct {
	br             *bufio.Reader
	codec          Codec
	characteristic uint32
}

// NewReader opens a .flt stream and reads its header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedStream)
	}

	codec := CodecNone
	switch {
	case bytes.Equal(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		br = bufio.NewReader(zr)
		codec = CodecZstd
	case bytes.Equal(head, lz4Magic):
		br = bufio.NewReader(lz4.NewReader(br))
		codec = CodecLZ4
	}

	magic := make([]byte, len(formatMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedStream)
	}
	if string(magic) != formatMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformedStream)
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedStream)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	characteristic, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedStream)
	}

	return &Reader{br: br, codec: codec, characteristic: uint32(characteristic)}, nil
}

// Codec returns the detected compression codec.
func (r *Reader) Codec() Codec { return r.codec }

// Characteristic returns the field characteristic recorded in the header.
func (r *Reader) Characteristic() uint32 { return r.characteristic }

// Next decodes the next record. It returns io.EOF at the clean end of the
// stream.
func (r *Reader) Next() (Record, error) {
	marker, err := r.br.ReadByte()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	if err != nil {
		return Record{}, err
	}
	if marker != recordMarker {
		return Record{}, fmt.Errorf("%w: bad record marker 0x%02x", ErrMalformedStream, marker)
	}

	var rec Record

	if rec.ID, err = binary.ReadUvarint(r.br); err != nil {
		return Record{}, r.truncated(err)
	}

	dim, err := binary.ReadUvarint(r.br)
	if err != nil {
		return Record{}, r.truncated(err)
	}
	rec.Dim = uint32(dim)

	faces, err := binary.ReadUvarint(r.br)
	if err != nil {
		return Record{}, r.truncated(err)
	}
	// Boundary faces are strictly increasing and below the simplex id, so a
	// valid boundary never lists more than id faces.
	if faces > rec.ID || faces > maxRecordFaces {
		return Record{}, fmt.Errorf("%w: record %d claims %d boundary faces", ErrMalformedStream, rec.ID, faces)
	}
	if faces > 0 {
		rec.Boundary = make([]uint64, faces)
		for i := range rec.Boundary {
			if rec.Boundary[i], err = binary.ReadUvarint(r.br); err != nil {
				return Record{}, r.truncated(err)
			}
		}
	}

	hasCoeffs, err := r.br.ReadByte()
	if err != nil {
		return Record{}, r.truncated(err)
	}
	if hasCoeffs > 1 {
		return Record{}, fmt.Errorf("%w: bad coefficient flag 0x%02x", ErrMalformedStream, hasCoeffs)
	}
	if hasCoeffs == 1 {
		rec.Coefficients = make([]int8, faces)
		for i := range rec.Coefficients {
			b, err := r.br.ReadByte()
			if err != nil {
				return Record{}, r.truncated(err)
			}
			rec.Coefficients[i] = int8(b)
		}
	}

	var val [8]byte
	if _, err := io.ReadFull(r.br, val[:]); err != nil {
		return Record{}, r.truncated(err)
	}
	rec.Value = math.Float64frombits(binary.LittleEndian.Uint64(val[:]))

	if err := rec.Validate(); err != nil {
		return Record{}, err
	}

	return rec, nil
}

func (r *Reader) truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated record", ErrMalformedStream)
	}

	return err
}

// ReadAll decodes an entire .flt stream.
func ReadAll(r io.Reader) ([]Record, uint32, error) {
	fr, err := NewReader(r)
	if err != nil {
		return nil, 0, err
	}

	var recs []Record
	for {
		rec, err := fr.Next()
		if err == io.EOF {
			return recs, fr.Characteristic(), nil
		}
		if err != nil {
			return nil, 0, err
		}

		recs = append(recs, rec)
	}
}
