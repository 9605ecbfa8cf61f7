package recording

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/softsim/internal/dynamo"
)

const (
	Version      = 1
	ManifestFile = "manifest.json"
	FramesFile   = "frames.bin.zst"
	EventsFile   = "events.jsonl.sz"

	frameHeaderSize = 8 + 8 + 4
)

var ErrClosed = errors.New("recording: writer closed")

type Manifest struct {
	Version    int     `json:"version"`
	Scene      string  `json:"scene"`
	CreatedAt  string  `json:"created_at"`
	Dt         float64 `json:"dt"`
	Vertices   int     `json:"vertices"`
	FramesPath string  `json:"frames_path"`
	EventsPath string  `json:"events_path"`
}

type Event struct {
	Step   uint64            `json:"step"`
	Time   float64           `json:"time"`
	Type   string            `json:"type"`
	Detail map[string]string `json:"detail,omitempty"`
}

// Writer streams frames and events of one run. It is safe for concurrent use.
type Writer struct {
	mu          sync.Mutex
	dir         string
	eventFile   *os.File
	eventStream *snappy.Writer
	frameFile   *os.File
	frameStream *zstd.Encoder
	buf         []byte
	frames      int
	err         error
	closed      bool
}

// NewWriter creates dir and opens the compressed sinks inside it.
func NewWriter(dir, scene string, dt float64, vertices int) (*Writer, Manifest, error) {
	if dir == "" {
		return nil, Manifest{}, fmt.Errorf("recording: directory must be provided")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, Manifest{}, err
	}

	manifest := Manifest{
		Version:    Version,
		Scene:      scene,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		Dt:         dt,
		Vertices:   vertices,
		FramesPath: FramesFile,
		EventsPath: EventsFile,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return nil, Manifest{}, err
	}

	eventFile, err := os.Create(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, Manifest{}, err
	}
	frameFile, err := os.Create(filepath.Join(dir, FramesFile))
	if err != nil {
		eventFile.Close()
		return nil, Manifest{}, err
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventFile.Close()
		frameFile.Close()
		return nil, Manifest{}, err
	}

	w := &Writer{
		dir:         dir,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
		frameFile:   frameFile,
		frameStream: frameStream,
	}
	return w, manifest, nil
}

func (w *Writer) Directory() string { return w.dir }

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

func (w *Writer) AppendFrame(step uint64, t float64, vertices []mgl64.Vec3) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	size := frameHeaderSize + 24*len(vertices)
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	buf := w.buf[:size]
	binary.LittleEndian.PutUint64(buf[0:8], step)
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(t))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(vertices)))
	off := frameHeaderSize
	for _, v := range vertices {
		for _, c := range v {
			binary.LittleEndian.PutUint64(buf[off:off+8], math.Float64bits(c))
			off += 8
		}
	}
	if _, err := w.frameStream.Write(buf); err != nil {
		return err
	}
	w.frames++
	return nil
}

// AppendEvent writes one event line and flushes it.
func (w *Writer) AppendEvent(e Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if _, err := w.eventStream.Write(append(line, '\n')); err != nil {
		return err
	}
	return w.eventStream.Flush()
}

// OnStep records the current render vertices of b. The first error is kept
// and returned by Close.
func (w *Writer) OnStep(b *dynamo.Body, t float64) {
	if err := w.AppendFrame(uint64(b.StepCount()), t, b.Vertices()); err != nil {
		w.mu.Lock()
		if w.err == nil {
			w.err = err
		}
		w.mu.Unlock()
	}
}

// Close flushes every stream and releases the files. It returns the first
// error seen, including deferred OnStep failures.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	firstErr := w.err
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(w.eventStream.Close())
	keep(w.eventFile.Close())
	keep(w.frameStream.Close())
	keep(w.frameFile.Close())
	return firstErr
}

var _ dynamo.Observer = (*Writer)(nil)
