// Package capture reads the classic pcap capture-file format
// (draft-gharris-opsawg-pcap-00) and yields raw per-packet payloads.
//
// Only the raw-loopback link type (0) has been exercised against real
// captures; other link types are accepted but logged once as untested,
// matching the original Python reader this package is ported from.
package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/gopacket/layers"
)

// FileHeaderSize is the size in bytes of the capture-file global header.
const FileHeaderSize = 24

// PacketHeaderSize is the size in bytes of the per-packet header that
// precedes each captured payload.
const PacketHeaderSize = 16

// TimestampUnit describes the resolution of the per-packet sub-second
// timestamp field, selected by the file header's magic number.
type TimestampUnit int

const (
	Microseconds TimestampUnit = iota
	Nanoseconds
)

func (u TimestampUnit) String() string {
	if u == Nanoseconds {
		return "nanoseconds"
	}
	return "microseconds"
}

// ErrInvalidMagic is returned when a file's first four bytes match none of
// the big/little-endian, micro/nanosecond magic number variants.
var ErrInvalidMagic = errors.New("capture: invalid file magic")

var (
	magicBigMicro    = [4]byte{0xA1, 0xB2, 0xC3, 0xD4}
	magicBigNano     = [4]byte{0xA1, 0xB2, 0x3C, 0x4D}
	magicLittleMicro = [4]byte{0xD4, 0xC3, 0xB2, 0xA1}
	magicLittleNano  = [4]byte{0x4D, 0x3C, 0xB2, 0xA1}
)

// Header holds the parsed capture-file global header and the metadata
// derived from it (byte order, timestamp resolution).
type Header struct {
	ByteOrder     binary.ByteOrder
	TimestampUnit TimestampUnit
	MajorVersion  uint16
	MinorVersion  uint16
	SnapLen       uint32
	FCSFlags      byte
	LinkType      uint32
	FileSizeBytes int64
}

// Reader exposes a capture file's resolved header and a restartable,
// lazy sequence of raw packet payloads. Iteration re-opens the file from
// the start each time, so a Reader may be iterated more than once.
type Reader struct {
	path   string
	Header Header
}

// Open reads and validates the 24-byte file header. It does not keep the
// file open; Each reopens the file for every pass.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw [FileHeaderSize]byte
	if _, err := io.ReadFull(f, raw[:]); err != nil {
		return nil, fmt.Errorf("capture: reading file header: %w", err)
	}

	hdr, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("capture: stat: %w", err)
	}
	hdr.FileSizeBytes = info.Size()

	if hdr.LinkType != 0 {
		warnUnsupportedLinkTypeOnce(hdr.LinkType)
	}

	return &Reader{path: path, Header: hdr}, nil
}

func parseHeader(raw [FileHeaderSize]byte) (Header, error) {
	var magic [4]byte
	copy(magic[:], raw[0:4])

	var order binary.ByteOrder
	var unit TimestampUnit
	switch magic {
	case magicBigMicro:
		order, unit = binary.BigEndian, Microseconds
	case magicBigNano:
		order, unit = binary.BigEndian, Nanoseconds
	case magicLittleMicro:
		order, unit = binary.LittleEndian, Microseconds
	case magicLittleNano:
		order, unit = binary.LittleEndian, Nanoseconds
	default:
		return Header{}, fmt.Errorf("%w: got % X", ErrInvalidMagic, magic)
	}

	return Header{
		ByteOrder:     order,
		TimestampUnit: unit,
		MajorVersion:  order.Uint16(raw[4:6]),
		MinorVersion:  order.Uint16(raw[6:8]),
		SnapLen:       order.Uint32(raw[16:20]),
		FCSFlags:      raw[20],
		LinkType:      decodeLinkType(order, raw[21], raw[22], raw[23]),
	}, nil
}

// decodeLinkType composes the 3-byte link-type field according to the
// file's detected byte order, matching the original reader's use of
// int.from_bytes(header[21:24], endian) rather than a fixed endianness.
func decodeLinkType(order binary.ByteOrder, b0, b1, b2 byte) uint32 {
	if order == binary.LittleEndian {
		return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
	}
	return uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
}

// Each opens the file afresh and invokes fn once per packet payload, in
// file order. Returning false from fn, or a non-nil error, stops iteration
// early; fn's error (if any) is returned from Each. Iteration also stops
// cleanly (no error) when the file ends on a packet-header or payload
// boundary, matching capture files with a truncated trailing packet.
func (r *Reader) Each(fn func(payload []byte) (bool, error)) error {
	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(FileHeaderSize, io.SeekStart); err != nil {
		return fmt.Errorf("capture: seeking past file header: %w", err)
	}

	order := r.Header.ByteOrder
	var pktHeader [PacketHeaderSize]byte
	for {
		if _, err := io.ReadFull(f, pktHeader[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("capture: reading packet header: %w", err)
		}

		capturedLen := order.Uint32(pktHeader[8:12])
		payload := make([]byte, capturedLen)
		if _, err := io.ReadFull(f, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("capture: reading packet payload: %w", err)
		}

		cont, err := fn(payload)
		if err != nil || !cont {
			return err
		}
	}
}

var (
	warnedLinkTypesMu sync.Mutex
	warnedLinkTypes   = map[uint32]bool{}
)

// warnUnsupportedLinkTypeOnce logs a single warning per distinct non-zero
// link type observed across the process lifetime, naming it via gopacket's
// link-type registry where available.
func warnUnsupportedLinkTypeOnce(linkType uint32) {
	warnedLinkTypesMu.Lock()
	defer warnedLinkTypesMu.Unlock()
	if warnedLinkTypes[linkType] {
		return
	}
	warnedLinkTypes[linkType] = true
	debugf("untested link type %d (%s); only link type 0 (loopback) is exercised against real captures",
		linkType, layers.LinkType(linkType))
}
