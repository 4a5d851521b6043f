// Package serial implements the recipe's textual serializer/deserializer: a
// deterministic, whitespace-delimited wire form, parsed back with a
// tag-dispatch table keyed by transposer name.
package serial

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/permutecrypt/transpose/block"
	"github.com/permutecrypt/transpose/domain"
	"github.com/permutecrypt/transpose/recipe"
	"github.com/permutecrypt/transpose/transposer"
	"github.com/permutecrypt/transpose/xerr"
)

// Write renders r's wire form to w.
func Write(w io.Writer, r *recipe.Recipe) error {
	_, err := io.WriteString(w, r.WireForm())
	if err != nil {
		return xerr.Wrap(err, "writing recipe wire form")
	}
	return nil
}

// Read parses a wire form from r into a recipe, validating every
// permutation and transposer along the way.
func Read(r io.Reader) (*recipe.Recipe, error) {
	s := &scanner{in: bufio.NewReader(r)}

	count, err := s.uint()
	if err != nil {
		return nil, xerr.Wrap(xerr.ErrMalformedRecipe, "reading layer count: %v", err)
	}

	built := recipe.New()
	for i := 0; i < count; i++ {
		mode, err := readPadMode(s)
		if err != nil {
			return nil, xerr.Wrap(xerr.ErrMalformedRecipe, "reading layer %d pad mode: %v", i, err)
		}
		d, err := readDomain(s)
		if err != nil {
			return nil, xerr.Wrap(xerr.ErrMalformedRecipe, "reading layer %d domain: %v", i, err)
		}
		t, err := readTransposer(s)
		if err != nil {
			return nil, xerr.Wrap(xerr.ErrMalformedRecipe, "reading layer %d transposer: %v", i, err)
		}
		built.Push(mode, d, t)
	}
	return built, nil
}

// scanner reads space-delimited tokens off a bufio.Reader, matching the
// wire form's "single space between tokens" convention; only the space
// byte separates tokens, not tabs or newlines.
type scanner struct {
	in *bufio.Reader
}

func (s *scanner) token() (string, error) {
	var tok []byte
	for {
		b, err := s.in.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		if b == ' ' {
			if len(tok) == 0 {
				continue
			}
			return string(tok), nil
		}
		tok = append(tok, b)
	}
}

func (s *scanner) uint() (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("expected non-negative integer, got %q", tok)
	}
	return n, nil
}

func (s *scanner) array() ([]int, error) {
	length, err := s.uint()
	if err != nil {
		return nil, fmt.Errorf("reading array length: %v", err)
	}
	indices := make([]int, length)
	for i := range indices {
		n, err := s.uint()
		if err != nil {
			return nil, fmt.Errorf("reading array element %d: %v", i, err)
		}
		indices[i] = n
	}
	return indices, nil
}

func readPadMode(s *scanner) (block.PadMode, error) {
	tag, err := s.token()
	if err != nil {
		return 0, err
	}
	switch tag {
	case "padding":
		return block.Padding, nil
	case "unpadding":
		return block.Unpadding, nil
	default:
		return 0, fmt.Errorf("unknown pad mode tag %q", tag)
	}
}

func readDomain(s *scanner) (domain.Domain, error) {
	tag, err := s.token()
	if err != nil {
		return domain.Domain{}, err
	}
	switch tag {
	case "bit":
		return domain.NewBit(), nil
	case "byte":
		return domain.NewByte(), nil
	case "char":
		return domain.NewChar(), nil
	case "group":
		size, err := s.uint()
		if err != nil {
			return domain.Domain{}, fmt.Errorf("reading group size: %v", err)
		}
		return domain.NewGroup(size), nil
	default:
		return domain.Domain{}, fmt.Errorf("unknown symbol domain tag %q", tag)
	}
}

// transposerReaders maps each transposer wire-form tag to the parser that
// consumes its remaining tokens.
var transposerReaders = map[string]func(*scanner) (transposer.Transposer, error){
	"simple": func(s *scanner) (transposer.Transposer, error) {
		indices, err := s.array()
		if err != nil {
			return nil, err
		}
		return transposer.NewSimple(indices)
	},
	"rail": func(s *scanner) (transposer.Transposer, error) {
		columns, err := s.uint()
		if err != nil {
			return nil, err
		}
		rows, err := s.uint()
		if err != nil {
			return nil, err
		}
		return transposer.NewRailFence(rows, columns)
	},
	"vertical": func(s *scanner) (transposer.Transposer, error) {
		rows, err := s.uint()
		if err != nil {
			return nil, err
		}
		columns, err := s.uint()
		if err != nil {
			return nil, err
		}
		tag, err := s.token()
		if err != nil {
			return nil, err
		}
		if tag != "simple" {
			return nil, fmt.Errorf("vertical column permutation must be tagged simple, got %q", tag)
		}
		indices, err := s.array()
		if err != nil {
			return nil, err
		}
		columnOrder, err := transposer.NewSimple(indices)
		if err != nil {
			return nil, err
		}
		return transposer.NewVertical(rows, columns, columnOrder)
	},
}

func readTransposer(s *scanner) (transposer.Transposer, error) {
	tag, err := s.token()
	if err != nil {
		return nil, err
	}
	reader, ok := transposerReaders[tag]
	if !ok {
		return nil, fmt.Errorf("unknown transposer tag %q", tag)
	}
	return reader(s)
}
