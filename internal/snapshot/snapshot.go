// Package snapshot loads the input of one analysis request: a file tree, the
// dependency edges between files and, optionally, the file contents.
//
// Snapshots are JSON, YAML or TOML documents, optionally gzip or zstd
// compressed. The format is chosen from the file name, e.g. repo.yaml.zst.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	rlerrors "repolens/internal/errors"
	"repolens/internal/graph"
	"repolens/internal/repotree"
)

// Format is a snapshot document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Compression is a snapshot stream compression.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Snapshot is one repository state handed to the analyzers.
type Snapshot struct {
	Name     string            `json:"name" yaml:"name" toml:"name"`
	Tree     *repotree.Node    `json:"tree,omitempty" yaml:"tree,omitempty" toml:"tree,omitempty"`
	Edges    []graph.Edge      `json:"edges" yaml:"edges" toml:"edges"`
	Contents map[string]string `json:"contents,omitempty" yaml:"contents,omitempty" toml:"contents,omitempty"`
}

// Index builds the adjacency index over the snapshot edges.
func (s *Snapshot) Index() *graph.Index {
	return graph.BuildIndex(s.Edges)
}

// Paths returns every file path the snapshot knows about, sorted.
func (s *Snapshot) Paths() []string {
	seen := make(map[string]bool)
	for p := range s.Contents {
		seen[p] = true
	}
	for _, e := range s.Edges {
		seen[e.Source] = true
		seen[e.Target] = true
	}
	for _, f := range repotree.Files(s.Tree) {
		seen[f.Path] = true
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DetectFormat derives the encoding and compression from a file name.
func DetectFormat(name string) (Format, Compression, error) {
	lower := strings.ToLower(name)

	compression := CompressionNone
	switch {
	case strings.HasSuffix(lower, ".gz"):
		compression = CompressionGzip
		lower = strings.TrimSuffix(lower, ".gz")
	case strings.HasSuffix(lower, ".zst"):
		compression = CompressionZstd
		lower = strings.TrimSuffix(lower, ".zst")
	}

	switch filepath.Ext(lower) {
	case ".json":
		return FormatJSON, compression, nil
	case ".yaml", ".yml":
		return FormatYAML, compression, nil
	case ".toml":
		return FormatTOML, compression, nil
	}
	return "", compression, rlerrors.Newf(rlerrors.UnsupportedFormat, "unsupported snapshot file %q", filepath.Base(name))
}

// Load reads and decodes a snapshot file.
func Load(path string) (*Snapshot, error) {
	format, compression, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rlerrors.New(rlerrors.SnapshotMissing, fmt.Sprintf("snapshot %s not found", path), err)
		}
		return nil, rlerrors.New(rlerrors.InternalError, "failed to open snapshot", err)
	}
	defer f.Close()

	snap, err := Decode(f, format, compression)
	if err != nil {
		return nil, err
	}
	if snap.Name == "" {
		snap.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return snap, nil
}

// Decode reads a snapshot from r.
func Decode(r io.Reader, format Format, compression Compression) (*Snapshot, error) {
	rc, err := decompress(r, compression)
	if err != nil {
		return nil, rlerrors.New(rlerrors.SnapshotInvalid, "failed to open compressed stream", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, rlerrors.New(rlerrors.SnapshotInvalid, "failed to read snapshot", err)
	}

	var snap Snapshot
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &snap)
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	case FormatTOML:
		_, err = toml.Decode(string(data), &snap)
	default:
		return nil, rlerrors.Newf(rlerrors.UnsupportedFormat, "unsupported snapshot format %q", format)
	}
	if err != nil {
		return nil, rlerrors.New(rlerrors.SnapshotInvalid, fmt.Sprintf("failed to decode %s snapshot", format), err)
	}

	if err := snap.validate(); err != nil {
		return nil, err
	}
	snap.normalize()
	return &snap, nil
}

func decompress(r io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}

func (s *Snapshot) validate() error {
	for i, e := range s.Edges {
		if e.Source == "" || e.Target == "" {
			return rlerrors.New(rlerrors.SnapshotInvalid, fmt.Sprintf("edge %d has an empty endpoint", i), nil).
				WithDetails(map[string]interface{}{"index": i, "source": e.Source, "target": e.Target})
		}
	}
	return nil
}

// normalize fills in a tree built from the known paths when none was given.
func (s *Snapshot) normalize() {
	if s.Contents == nil {
		s.Contents = map[string]string{}
	}
	if s.Tree == nil {
		s.Tree = repotree.FromPaths(s.Paths())
	}
}

// Save encodes the snapshot to path, choosing the format from its name.
func (s *Snapshot) Save(path string) error {
	format, compression, err := DetectFormat(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, format, compression); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Encode writes the snapshot to w.
func (s *Snapshot) Encode(w io.Writer, format Format, compression Compression) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(s)
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(s)
		data = buf.Bytes()
	default:
		return rlerrors.Newf(rlerrors.UnsupportedFormat, "unsupported snapshot format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	switch compression {
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		return zw.Close()
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	default:
		_, err := w.Write(data)
		return err
	}
}
