// Package testutil builds synthetic capture files and Velodyne payloads for
// tests across the decode pipeline, plus small assertion helpers shared by
// package tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// CaptureHeaderSize and CapturePacketHeaderSize mirror the capture
// package's constants without importing it, keeping this package dependency
// free of the thing it's building fixtures for.
const (
	CaptureHeaderSize       = 24
	CapturePacketHeaderSize = 16
)

// BuildCaptureFile writes a minimal capture file to a temp directory and
// returns its path. magic must be one of the four recognized 4-byte magic
// sequences; order must match the byte order that magic implies.
func BuildCaptureFile(t *testing.T, magic [4]byte, order binary.ByteOrder, linkType uint32, packets [][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("testutil: create capture file: %v", err)
	}
	defer f.Close()

	var hdr [CaptureHeaderSize]byte
	copy(hdr[0:4], magic[:])
	order.PutUint16(hdr[4:6], 2)
	order.PutUint16(hdr[6:8], 4)
	order.PutUint32(hdr[16:20], 65535)
	if order == binary.LittleEndian {
		hdr[21] = byte(linkType)
		hdr[22] = byte(linkType >> 8)
		hdr[23] = byte(linkType >> 16)
	} else {
		hdr[21] = byte(linkType >> 16)
		hdr[22] = byte(linkType >> 8)
		hdr[23] = byte(linkType)
	}
	if _, err := f.Write(hdr[:]); err != nil {
		t.Fatalf("testutil: write capture header: %v", err)
	}

	for _, p := range packets {
		var pktHdr [CapturePacketHeaderSize]byte
		order.PutUint32(pktHdr[8:12], uint32(len(p)))
		order.PutUint32(pktHdr[12:16], uint32(len(p)))
		if _, err := f.Write(pktHdr[:]); err != nil {
			t.Fatalf("testutil: write packet header: %v", err)
		}
		if _, err := f.Write(p); err != nil {
			t.Fatalf("testutil: write packet payload: %v", err)
		}
	}

	return path
}

// BuildVelodynePayload constructs a synthetic 1248-byte Velodyne sensor
// payload for productID, with every firing block set to the same azimuth,
// raw range, and intensity. parseRowLen must match the model's calibration
// table (300 for every model except VLS-128, which uses 100).
func BuildVelodynePayload(productID byte, parseRowLen int, azimuthDeg float64, rawDistance uint16, intensity byte) []byte {
	const (
		payloadSize   = 1248
		framingPrefix = 42
		firingSize    = 1200
	)

	payload := make([]byte, payloadSize)
	firing := payload[framingPrefix : framingPrefix+firingSize]

	azRaw := uint16(azimuthDeg * 100)
	nRows := firingSize / parseRowLen
	for row := 0; row < nRows; row++ {
		offset := row * parseRowLen
		binary.LittleEndian.PutUint16(firing[offset+2:offset+4], azRaw)
		for ch := 0; ch < 32; ch++ {
			base := offset + 4 + ch*3
			binary.LittleEndian.PutUint16(firing[base:base+2], rawDistance)
			firing[base+2] = intensity
		}
	}

	payload[payloadSize-1] = productID
	return payload
}

// AssertNoError fails the test immediately if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
}
