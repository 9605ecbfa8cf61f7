package recording

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

type Frame struct {
	Step     uint64
	Time     float64
	Vertices []mgl64.Vec3
}

// ReadManifest accepts either the recording directory or the manifest path.
func ReadManifest(path string) (Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Manifest{}, "", err
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, "", err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, "", err
	}
	if m.Version != Version {
		return Manifest{}, "", fmt.Errorf("recording: unsupported manifest version %d", m.Version)
	}
	return m, filepath.Dir(path), nil
}

// Open loads a whole recording.
func Open(path string) (Manifest, []Frame, []Event, error) {
	m, dir, err := ReadManifest(path)
	if err != nil {
		return Manifest{}, nil, nil, err
	}
	frames, err := ReadFrames(filepath.Join(dir, m.FramesPath))
	if err != nil {
		return Manifest{}, nil, nil, err
	}
	events, err := ReadEvents(filepath.Join(dir, m.EventsPath))
	if err != nil {
		return Manifest{}, nil, nil, err
	}
	return m, frames, events, nil
}

func ReadFrames(path string) ([]Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := zstd.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var frames []Frame
	off := 0
	for off < len(payload) {
		if off+frameHeaderSize > len(payload) {
			return nil, fmt.Errorf("recording: frame header truncated at byte %d", off)
		}
		step := binary.LittleEndian.Uint64(payload[off : off+8])
		t := math.Float64frombits(binary.LittleEndian.Uint64(payload[off+8 : off+16]))
		count := int(binary.LittleEndian.Uint32(payload[off+16 : off+20]))
		off += frameHeaderSize

		if off+24*count > len(payload) {
			return nil, fmt.Errorf("recording: frame %d payload truncated", len(frames))
		}
		verts := make([]mgl64.Vec3, count)
		for i := range verts {
			for j := 0; j < 3; j++ {
				verts[i][j] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off : off+8]))
				off += 8
			}
		}
		frames = append(frames, Frame{Step: step, Time: t, Vertices: verts})
	}
	return frames, nil
}

func ReadEvents(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(snappy.NewReader(file))
	var events []Event
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
