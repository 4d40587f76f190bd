package capture

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCapture assembles a minimal capture file: a 24-byte global header
// built from the given magic/order, followed by one 16-byte packet header
// plus payload per entry in packets.
func writeCapture(t *testing.T, magic [4]byte, order binary.ByteOrder, linkType uint32, packets [][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	var hdr [FileHeaderSize]byte
	copy(hdr[0:4], magic[:])
	order.PutUint16(hdr[4:6], 2)
	order.PutUint16(hdr[6:8], 4)
	order.PutUint32(hdr[16:20], 65535)
	hdr[20] = 0
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
		t.Fatalf("write header: %v", err)
	}

	for _, p := range packets {
		var pktHdr [PacketHeaderSize]byte
		order.PutUint32(pktHdr[0:4], 0)
		order.PutUint32(pktHdr[4:8], 0)
		order.PutUint32(pktHdr[8:12], uint32(len(p)))
		order.PutUint32(pktHdr[12:16], uint32(len(p)))
		if _, err := f.Write(pktHdr[:]); err != nil {
			t.Fatalf("write packet header: %v", err)
		}
		if _, err := f.Write(p); err != nil {
			t.Fatalf("write packet payload: %v", err)
		}
	}

	return path
}

func TestOpenDetectsMagicVariants(t *testing.T) {
	cases := []struct {
		name     string
		magic    [4]byte
		order    binary.ByteOrder
		wantUnit TimestampUnit
	}{
		{"big-micro", magicBigMicro, binary.BigEndian, Microseconds},
		{"big-nano", magicBigNano, binary.BigEndian, Nanoseconds},
		{"little-micro", magicLittleMicro, binary.LittleEndian, Microseconds},
		{"little-nano", magicLittleNano, binary.LittleEndian, Nanoseconds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCapture(t, tc.magic, tc.order, 0, nil)
			r, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if r.Header.TimestampUnit != tc.wantUnit {
				t.Errorf("TimestampUnit = %v, want %v", r.Header.TimestampUnit, tc.wantUnit)
			}
			if r.Header.ByteOrder != tc.order {
				t.Errorf("ByteOrder = %v, want %v", r.Header.ByteOrder, tc.order)
			}
			if r.Header.SnapLen != 65535 {
				t.Errorf("SnapLen = %d, want 65535", r.Header.SnapLen)
			}
		})
	}
}

func TestOpenRejectsInvalidMagic(t *testing.T) {
	path := writeCapture(t, [4]byte{0, 0, 0, 0}, binary.BigEndian, 0, nil)
	_, err := Open(path)
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestLinkTypeDecodedPerByteOrder(t *testing.T) {
	const linkType = 0x010203

	pathBig := writeCapture(t, magicBigMicro, binary.BigEndian, linkType, nil)
	rBig, err := Open(pathBig)
	if err != nil {
		t.Fatalf("Open (big): %v", err)
	}
	if rBig.Header.LinkType != linkType {
		t.Errorf("big-endian LinkType = %#x, want %#x", rBig.Header.LinkType, linkType)
	}

	pathLittle := writeCapture(t, magicLittleMicro, binary.LittleEndian, linkType, nil)
	rLittle, err := Open(pathLittle)
	if err != nil {
		t.Fatalf("Open (little): %v", err)
	}
	if rLittle.Header.LinkType != linkType {
		t.Errorf("little-endian LinkType = %#x, want %#x", rLittle.Header.LinkType, linkType)
	}
}

func TestEachYieldsPayloadsInOrder(t *testing.T) {
	packets := [][]byte{
		{1, 2, 3},
		{4, 5, 6, 7},
	}
	path := writeCapture(t, magicBigMicro, binary.BigEndian, 0, packets)
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var got [][]byte
	err = r.Each(func(payload []byte) (bool, error) {
		cp := append([]byte(nil), payload...)
		got = append(got, cp)
		return true, nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if len(got) != len(packets) {
		t.Fatalf("got %d payloads, want %d", len(got), len(packets))
	}
	for i := range packets {
		if string(got[i]) != string(packets[i]) {
			t.Errorf("payload %d = %v, want %v", i, got[i], packets[i])
		}
	}
}

func TestEachStopsCleanlyOnTruncatedTrailingPacket(t *testing.T) {
	path := writeCapture(t, magicBigMicro, binary.BigEndian, 0, [][]byte{{1, 2, 3}})

	// Truncate the file by one byte, chopping the end of the last payload.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := os.Truncate(path, info.Size()-1); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var calls int
	err = r.Each(func(payload []byte) (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("Each: %v, want nil (clean truncation)", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0 (truncated packet never delivered)", calls)
	}
}

func TestEachStopsWhenCallbackReturnsFalse(t *testing.T) {
	packets := [][]byte{{1}, {2}, {3}}
	path := writeCapture(t, magicBigMicro, binary.BigEndian, 0, packets)
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var calls int
	err = r.Each(func(payload []byte) (bool, error) {
		calls++
		return false, nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestEachIsRestartable(t *testing.T) {
	packets := [][]byte{{1, 2}, {3, 4}}
	path := writeCapture(t, magicBigMicro, binary.BigEndian, 0, packets)
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for pass := 0; pass < 2; pass++ {
		var calls int
		err = r.Each(func(payload []byte) (bool, error) {
			calls++
			return true, nil
		})
		if err != nil {
			t.Fatalf("pass %d: Each: %v", pass, err)
		}
		if calls != len(packets) {
			t.Fatalf("pass %d: calls = %d, want %d", pass, calls, len(packets))
		}
	}
}
