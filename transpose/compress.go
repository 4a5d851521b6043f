package main

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
)

// compress snappy-encodes data in memory, the buffer-oriented counterpart of
// std/comp.go's CompStream for a CLI that deals in whole files, not streams.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r := snappy.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}
