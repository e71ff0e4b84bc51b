package vecstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// On-disk layout: two co-located artifacts under the store directory.
//
//	index.bin  magic "VIDX", format version, dimension, vector count,
//	           then count*dimension float32 values, little-endian,
//	           in insertion order.
//	texts.dat  JSON {"count": N, "texts": [...]} with N source texts
//	           in the same order.
//
// The count is recorded in both artifacts and cross-checked on load, so a
// crash between the two renames is detected as corruption instead of being
// read as a misaligned store. Both files are written via temp-then-rename,
// texts last.

const (
	indexFile = "index.bin"
	textsFile = "texts.dat"

	formatVersion = 1
)

var indexMagic = [4]byte{'V', 'I', 'D', 'X'}

type textsPayload struct {
	Count int      `json:"count"`
	Texts []string `json:"texts"`
}

func persist(dir string, dim int, vectors [][]float32, texts []string) error {
	if err := writeAtomic(filepath.Join(dir, indexFile), encodeIndex(dim, vectors)); err != nil {
		return fmt.Errorf("write %s: %w", indexFile, err)
	}

	payload, err := json.Marshal(textsPayload{Count: len(texts), Texts: texts})
	if err != nil {
		return fmt.Errorf("encode texts: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, textsFile), payload); err != nil {
		return fmt.Errorf("write %s: %w", textsFile, err)
	}
	return nil
}

func load(dir string) (dim int, vectors [][]float32, texts []string, err error) {
	indexData, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		return 0, nil, nil, err
	}
	textsData, err := os.ReadFile(filepath.Join(dir, textsFile))
	if err != nil {
		return 0, nil, nil, err
	}

	dim, vectors, err = decodeIndex(indexData)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("decode %s: %w", indexFile, err)
	}

	var payload textsPayload
	if err := json.Unmarshal(textsData, &payload); err != nil {
		return 0, nil, nil, fmt.Errorf("decode %s: %w", textsFile, err)
	}
	if payload.Count != len(payload.Texts) {
		return 0, nil, nil, fmt.Errorf("%s count %d disagrees with %d texts",
			textsFile, payload.Count, len(payload.Texts))
	}
	if len(payload.Texts) != len(vectors) {
		return 0, nil, nil, fmt.Errorf("store incoherent: %d vectors but %d texts",
			len(vectors), len(payload.Texts))
	}

	return dim, vectors, payload.Texts, nil
}

func encodeIndex(dim int, vectors [][]float32) []byte {
	buf := make([]byte, 0, 16+len(vectors)*dim*4)
	buf = append(buf, indexMagic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, formatVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dim))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vectors)))
	for _, v := range vectors {
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

func decodeIndex(data []byte) (int, [][]float32, error) {
	if len(data) < 16 {
		return 0, nil, fmt.Errorf("truncated header: %d bytes", len(data))
	}
	if [4]byte(data[:4]) != indexMagic {
		return 0, nil, fmt.Errorf("bad magic %q", data[:4])
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != formatVersion {
		return 0, nil, fmt.Errorf("unsupported format version %d", version)
	}
	dim := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))

	body := data[16:]
	want := count * dim * 4
	if len(body) != want {
		return 0, nil, fmt.Errorf("expected %d vector bytes, got %d", want, len(body))
	}

	vectors := make([][]float32, count)
	off := 0
	for i := range vectors {
		v := make([]float32, dim)
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(body[off : off+4]))
			off += 4
		}
		vectors[i] = v
	}
	return dim, vectors, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
