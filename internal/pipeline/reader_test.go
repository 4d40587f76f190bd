package pipeline

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/openlidar/velodecode/internal/config"
	"github.com/openlidar/velodecode/internal/rotation"
	"github.com/openlidar/velodecode/internal/testutil"
	"github.com/openlidar/velodecode/internal/velodyne"
)

var magicBigMicro = [4]byte{0xA1, 0xB2, 0xC3, 0xD4}

func azimuthSweep() []float64 {
	return []float64{350, 355, 1, 5, 10, 15, 20, 25, 30, 35,
		40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 350, 355}
}

func TestSingleVLP16PacketAtOriginYieldsNoCloudAlone(t *testing.T) {
	payload := testutil.BuildVelodynePayload(34, 300, 0, 0, 0)
	path := testutil.BuildCaptureFile(t, magicBigMicro, binary.BigEndian, 0, [][]byte{payload})

	r, err := Open(path, config.DefaultDecodeOptions())
	testutil.AssertNoError(t, err)

	var clouds []rotation.Cloud
	err = r.Each(func(c rotation.Cloud) error {
		clouds = append(clouds, c)
		return nil
	})
	testutil.AssertNoError(t, err)
	if len(clouds) != 0 {
		t.Fatalf("got %d clouds from a single packet, want 0 (no wraparound yet)", len(clouds))
	}
	if r.LidarName() != "VLP-16" {
		t.Fatalf("LidarName() = %q, want VLP-16", r.LidarName())
	}
}

func TestSweepEmitsCloudOnWraparound(t *testing.T) {
	var packets [][]byte
	for _, az := range azimuthSweep() {
		packets = append(packets, testutil.BuildVelodynePayload(34, 300, az, 500, 1))
	}
	path := testutil.BuildCaptureFile(t, magicBigMicro, binary.BigEndian, 0, packets)

	r, err := Open(path, config.DefaultDecodeOptions())
	testutil.AssertNoError(t, err)

	var clouds []rotation.Cloud
	err = r.Each(func(c rotation.Cloud) error {
		clouds = append(clouds, c)
		return nil
	})
	testutil.AssertNoError(t, err)
	if len(clouds) != 1 {
		t.Fatalf("got %d clouds, want 1", len(clouds))
	}
	if clouds[0].Points.Rows() != clouds[0].FramesPerRotation*128 {
		t.Fatalf("Points.Rows() = %d, want %d (128 points/packet * %d packets)",
			clouds[0].Points.Rows(), clouds[0].FramesPerRotation*128, clouds[0].FramesPerRotation)
	}
	if r.FramesPerRotation() != clouds[0].FramesPerRotation {
		t.Fatalf("FramesPerRotation() = %d, want %d", r.FramesPerRotation(), clouds[0].FramesPerRotation)
	}
}

func TestNonSensorPacketsAreSkipped(t *testing.T) {
	controlPacket := make([]byte, 64)
	sensorPacket := testutil.BuildVelodynePayload(34, 300, 0, 0, 0)
	path := testutil.BuildCaptureFile(t, magicBigMicro, binary.BigEndian, 0,
		[][]byte{controlPacket, sensorPacket, controlPacket})

	r, err := Open(path, config.DefaultDecodeOptions())
	testutil.AssertNoError(t, err)

	decoded := 0
	err = r.Each(func(c rotation.Cloud) error {
		decoded++
		return nil
	})
	testutil.AssertNoError(t, err)
	if decoded != 0 {
		t.Fatalf("got %d clouds, want 0 (single sensor packet, no wraparound)", decoded)
	}
	if r.LidarName() != "VLP-16" {
		t.Fatalf("LidarName() = %q, want VLP-16 (control packets must not clobber it)", r.LidarName())
	}
}

func TestUnsupportedProductIDHaltsIteration(t *testing.T) {
	payload := testutil.BuildVelodynePayload(99, 300, 0, 0, 0)
	path := testutil.BuildCaptureFile(t, magicBigMicro, binary.BigEndian, 0, [][]byte{payload})

	r, err := Open(path, config.DefaultDecodeOptions())
	testutil.AssertNoError(t, err)

	emitted := false
	err = r.Each(func(c rotation.Cloud) error {
		emitted = true
		return nil
	})
	if !errors.Is(err, velodyne.ErrUnsupportedModel) {
		t.Fatalf("Each() err = %v, want wrapped velodyne.ErrUnsupportedModel", err)
	}
	if emitted {
		t.Fatalf("Each() invoked the callback, want iteration to halt before any cloud is emitted")
	}
}

func TestVLS128LidarName(t *testing.T) {
	payload := testutil.BuildVelodynePayload(161, 100, 0, 0, 0)
	path := testutil.BuildCaptureFile(t, magicBigMicro, binary.BigEndian, 0, [][]byte{payload})

	r, err := Open(path, config.DefaultDecodeOptions())
	testutil.AssertNoError(t, err)

	err = r.Each(func(c rotation.Cloud) error { return nil })
	testutil.AssertNoError(t, err)
	if r.LidarName() != "VLS-128" {
		t.Fatalf("LidarName() = %q, want VLS-128", r.LidarName())
	}
}
