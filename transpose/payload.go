package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/permutecrypt/transpose/std"
	"github.com/permutecrypt/transpose/xerr"
)

// writePayload encodes a payload file: uint64_be(token count) ‖ one
// uint64_be per token ‖ ciphertext bytes, with a leading compression-flag
// byte of 1 when the caller asked for --compress (no flag byte otherwise). The core
// never produces or consumes this flag; it is a CLI-only framing.
func writePayload(path string, compress bool, tokens []int, ciphertext []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return xerr.Wrap(xerr.ErrIO, "creating payload file %q", path)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	if compress {
		if _, err := w.Write([]byte{1}); err != nil {
			return xerr.Wrap(xerr.ErrIO, "writing compression flag")
		}
	}

	var header bytes.Buffer
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(tokens)))
	header.Write(lenBuf[:])
	for _, t := range tokens {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(t))
		header.Write(lenBuf[:])
	}
	if _, err := std.Copy(w, &header); err != nil {
		return xerr.Wrap(xerr.ErrIO, "writing payload header")
	}
	if _, err := std.Copy(w, bytes.NewReader(ciphertext)); err != nil {
		return xerr.Wrap(xerr.ErrIO, "writing payload ciphertext")
	}

	return w.Flush()
}

// readPayload is the inverse of writePayload; the caller must supply the
// same compress flag it encrypted with, since the flag byte's presence is
// not self-describing.
func readPayload(path string, compress bool) (tokens []int, ciphertext []byte, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, xerr.Wrap(xerr.ErrIO, "opening payload file %q", path)
	}
	defer file.Close()

	r := bufio.NewReader(file)

	if compress {
		if _, err := r.Discard(1); err != nil {
			return nil, nil, xerr.Wrap(xerr.ErrIO, "reading compression flag")
		}
	}

	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, nil, xerr.Wrap(xerr.ErrIO, "reading token count")
	}
	count := binary.BigEndian.Uint64(lenBuf[:])

	tokens = make([]int, count)
	for i := range tokens {
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, nil, xerr.Wrap(xerr.ErrIO, "reading token %d", i)
		}
		tokens[i] = int(binary.BigEndian.Uint64(lenBuf[:]))
	}

	ciphertext, err = io.ReadAll(r)
	if err != nil {
		return nil, nil, xerr.Wrap(xerr.ErrIO, "reading payload ciphertext")
	}
	return tokens, ciphertext, nil
}
