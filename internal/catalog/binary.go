package catalog

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

const (
	headerSize = 7 * 4

	// recordSize is the canonical BSC5 entry: f32 + 2×f64 + 2×u8 + i16 + 2×f32.
	recordSize = 4 + 8 + 8 + 1 + 1 + 2 + 4 + 4
)

// Header is the fixed binary catalog header.
type Header struct {
	SequenceOffset int32
	StartIndex     int32
	NegCount       int32 // star count, negated
	NumberingMode  int32
	ProperMotion   int32
	MagnitudeCount int32
	RecordSize     int32
}

// Count returns the declared number of records.
func (h Header) Count() int {
	return -int(h.NegCount)
}

// BinaryFormat reads the little-endian fixed-record catalog (BSC5 layout).
// RA and Dec are stored in radians; magnitudes as int16 hundredths.
type BinaryFormat struct {
	Profile star.MagnitudeProfile
}

// Name implements Format.
func (BinaryFormat) Name() string {
	return "binary"
}

// Decode implements Format.
func (f BinaryFormat) Decode(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read binary catalog: %w", err)
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrMalformedEnvelope, headerSize, len(data))
	}
	hdr := parseHeader(data[:headerSize])

	count := hdr.Count()
	if count < 0 {
		return nil, fmt.Errorf("%w: negative star count %d", ErrMalformedEnvelope, count)
	}

	stride := int(hdr.RecordSize)
	if stride == 0 {
		stride = recordSize
	}
	if stride < recordSize {
		return nil, fmt.Errorf("%w: record size %d below %d", ErrMalformedEnvelope, stride, recordSize)
	}

	profile := f.Profile
	if profile == (star.MagnitudeProfile{}) {
		profile = star.Hundredths
	}

	res := &Result{
		Format: f.Name(),
		Stars:  make([]star.Star, 0, min(count, (len(data)-headerSize)/stride)),
	}

	body := data[headerSize:]
	for i := 0; i < count; i++ {
		off := i * stride
		// The trailing padding of the last record may be absent.
		if off+recordSize > len(body) {
			res.Truncated = true
			return res, fmt.Errorf("%w: %d of %d records present", ErrTruncatedBinaryData, i, count)
		}

		s, err := decodeRecord(body[off:off+recordSize], profile)
		if err != nil {
			res.skip(fmt.Errorf("record %d: %w", i, err))
			continue
		}
		res.Stars = append(res.Stars, s)
	}

	return res, nil
}

func parseHeader(b []byte) Header {
	le := binary.LittleEndian
	return Header{
		SequenceOffset: int32(le.Uint32(b[0:])),
		StartIndex:     int32(le.Uint32(b[4:])),
		NegCount:       int32(le.Uint32(b[8:])),
		NumberingMode:  int32(le.Uint32(b[12:])),
		ProperMotion:   int32(le.Uint32(b[16:])),
		MagnitudeCount: int32(le.Uint32(b[20:])),
		RecordSize:     int32(le.Uint32(b[24:])),
	}
}

func decodeRecord(b []byte, profile star.MagnitudeProfile) (star.Star, error) {
	le := binary.LittleEndian

	number := math.Float32frombits(le.Uint32(b[0:]))
	ra := math.Float64frombits(le.Uint64(b[4:]))
	dec := math.Float64frombits(le.Uint64(b[12:]))
	class := b[20]
	sub := b[21]
	mag := int16(le.Uint16(b[22:]))
	pmRA := math.Float32frombits(le.Uint32(b[24:]))
	pmDec := math.Float32frombits(le.Uint32(b[28:]))

	if !finite(float64(number)) {
		return star.Star{}, fmt.Errorf("%w: catalog number not finite", ErrMalformedRecord)
	}
	if !finite(ra) || !finite(dec) {
		return star.Star{}, fmt.Errorf("%w: HR %v: coordinates not finite", ErrMalformedRecord, number)
	}

	return star.New(star.Params{
		CatalogNumber:    int(math.Round(float64(number))),
		RA:               ra,
		Dec:              dec,
		PMRA:             float64(pmRA),
		PMDec:            float64(pmDec),
		SpectralClass:    spectralClassByte(class),
		SpectralFraction: star.SubclassFraction(sub),
		Magnitude:        float64(mag),
		HasMagnitude:     true,
		Profile:          profile,
	}), nil
}

// spectralClassByte treats blanks and NULs as "no class".
func spectralClassByte(b byte) byte {
	if b == ' ' {
		return 0
	}
	return b
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EncodeBinary writes stars in the binary catalog layout. Magnitudes are
// written as hundredths. It is the inverse of BinaryFormat.Decode for
// the fields the format carries.
func EncodeBinary(w io.Writer, stars []star.Star) error {
	hdr := Header{
		NegCount:     -int32(len(stars)),
		ProperMotion: 1,
		RecordSize:   recordSize,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range stars {
		rec := struct {
			Number float32
			RA     float64
			Dec    float64
			Class  byte
			Sub    byte
			Mag    int16
			PMRA   float32
			PMDec  float32
		}{
			Number: float32(s.CatalogNumber),
			RA:     s.RA,
			Dec:    s.Dec,
			Class:  s.SpectralClass,
			Sub:    byte('0' + int(math.Round(s.SpectralFraction*10))%10),
			Mag:    int16(math.Round(s.Magnitude * 100)),
			PMRA:   float32(s.PMRA),
			PMDec:  float32(s.PMDec),
		}
		if s.SpectralClass == 0 {
			rec.Class = ' '
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("write HR %d: %w", s.CatalogNumber, err)
		}
	}
	return nil
}
