// Package recipe implements the stacked recipe: an ordered list of layers,
// each a (padding mode, symbol domain, transposer) triple, driving
// encrypt/decrypt across all layers and tracking per-layer size tokens.
package recipe

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/permutecrypt/transpose/block"
	"github.com/permutecrypt/transpose/domain"
	"github.com/permutecrypt/transpose/transposer"
	"github.com/permutecrypt/transpose/xerr"
)

// Layer is one stage of a recipe: a padding discipline, a symbol domain,
// and the transposer that shuffles blocks of that domain.
type Layer struct {
	Mode       block.PadMode
	Domain     domain.Domain
	Transposer transposer.Transposer
}

// Recipe is an ordered, possibly empty list of layers.
type Recipe struct {
	layers []Layer
}

// New returns an empty recipe.
func New() *Recipe {
	return &Recipe{}
}

// Push appends a layer and returns the recipe, so calls can be chained.
func (r *Recipe) Push(mode block.PadMode, d domain.Domain, t transposer.Transposer) *Recipe {
	r.layers = append(r.layers, Layer{Mode: mode, Domain: d, Transposer: t})
	return r
}

// Len reports the number of layers.
func (r *Recipe) Len() int {
	return len(r.layers)
}

// Layers exposes the layer list for the serializer and keystore; callers
// must not mutate the returned slice's elements.
func (r *Recipe) Layers() []Layer {
	return r.layers
}

// Equal reports whether two recipes have structurally identical layers,
// used by the serializer's round-trip tests.
func (r *Recipe) Equal(other *Recipe) bool {
	if other == nil || len(r.layers) != len(other.layers) {
		return false
	}
	for i, layer := range r.layers {
		o := other.layers[i]
		if layer.Mode != o.Mode || layer.Domain != o.Domain {
			return false
		}
		if wireFormTransposer(layer.Transposer) != wireFormTransposer(o.Transposer) {
			return false
		}
	}
	return true
}

// Encrypt folds over layers in declaration order, producing one size token
// per layer alongside the final ciphertext.
func (r *Recipe) Encrypt(data []byte) ([]int, []byte, error) {
	tokens := make([]int, 0, len(r.layers))
	current := data
	for _, layer := range r.layers {
		token, ciphertext, err := domain.EncryptLayer(layer.Domain, layer.Transposer, layer.Mode, current)
		if err != nil {
			return nil, nil, xerr.Wrap(err, "encrypting layer %d", len(tokens))
		}
		tokens = append(tokens, token)
		current = ciphertext
	}
	return tokens, current, nil
}

// Decrypt requires one token per layer and folds over (layer, token) pairs
// in reverse order, inverting each layer.
func (r *Recipe) Decrypt(tokens []int, data []byte) ([]byte, error) {
	if len(tokens) != len(r.layers) {
		return nil, xerr.Wrap(xerr.ErrTokenMismatch, "got %d tokens, recipe has %d layers", len(tokens), len(r.layers))
	}

	current := data
	for i := len(r.layers) - 1; i >= 0; i-- {
		layer := r.layers[i]
		plaintext, err := domain.DecryptLayer(layer.Domain, layer.Transposer, layer.Mode, current, tokens[i])
		if err != nil {
			return nil, xerr.Wrap(err, "decrypting layer %d", i)
		}
		current = plaintext
	}
	return current, nil
}

// Fingerprint is a non-secret display hash of the recipe's wire form: the
// first 8 hex digits of its blake2b-256 sum. It never affects encrypt or
// decrypt and is never used as key material.
func (r *Recipe) Fingerprint() string {
	sum := blake2b.Sum256([]byte(r.WireForm()))
	return fmt.Sprintf("%x", sum[:4])
}

// WireForm renders the recipe's deterministic textual encoding, per the
// grammar serial.Write follows; Fingerprint reuses it directly so the two
// packages never need to import each other.
func (r *Recipe) WireForm() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d ", len(r.layers))
	for _, layer := range r.layers {
		fmt.Fprintf(&b, "%s %s %s ", layer.Mode, wireFormDomain(layer.Domain), wireFormTransposer(layer.Transposer))
	}
	return b.String()
}

func wireFormDomain(d domain.Domain) string {
	if d.Kind == domain.Group {
		return fmt.Sprintf("group %d", d.GroupSize)
	}
	return d.Kind.String()
}

func wireFormTransposer(t transposer.Transposer) string {
	switch v := t.(type) {
	case *transposer.Simple:
		return wireFormArray("simple", v.Indices())
	case *transposer.RailFence:
		return fmt.Sprintf("rail %d %d", v.Columns(), v.Rows())
	case *transposer.Vertical:
		return fmt.Sprintf("vertical %d %d %s", v.Rows(), v.Columns(), wireFormArray("simple", v.ColumnPermutation().Indices()))
	default:
		return fmt.Sprintf("unknown-transposer-%T", t)
	}
}

func wireFormArray(tag string, indices []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", tag, len(indices))
	for _, i := range indices {
		fmt.Fprintf(&b, " %d", i)
	}
	return b.String()
}
