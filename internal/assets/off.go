package assets

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrMalformedMesh is returned when an OFF file does not match its header counts or
// contains a face that is not a triangle.
var ErrMalformedMesh = errors.New("malformed mesh")

// OFF is an indexed triangle mesh as stored in an OFF file.
type OFF struct {
	Vertices []mgl32.Vec3
	Faces    [][3]int
}

// LoadOFF reads "OFF", the vertex/face/edge counts, the vertex positions and then
// triangle faces ("3 a b c"). Lines starting with # are ignored.
func LoadOFF(r io.Reader) (*OFF, error) {
	in := parse.NewInput(r)
	defer in.Restore()
	if err := in.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("assets: read off: %w", err)
	}
	lx := offLexer{in: in}

	if tok := lx.next(); string(tok) != "OFF" {
		return nil, fmt.Errorf("assets: missing OFF header, got %q: %w", tok, ErrMalformedMesh)
	}
	nv, err := lx.count("vertex count")
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	nf, err := lx.count("face count")
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if _, err := lx.count("edge count"); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	off := &OFF{
		Vertices: make([]mgl32.Vec3, nv),
		Faces:    make([][3]int, nf),
	}
	for i := range off.Vertices {
		for k := 0; k < 3; k++ {
			f, err := lx.float()
			if err != nil {
				return nil, fmt.Errorf("assets: vertex %d: %w", i, err)
			}
			off.Vertices[i][k] = f
		}
	}
	for i := range off.Faces {
		sides, err := lx.count("face size")
		if err != nil {
			return nil, fmt.Errorf("assets: face %d: %w", i, err)
		}
		if sides != 3 {
			return nil, fmt.Errorf("assets: face %d has %d sides: %w", i, sides, ErrMalformedMesh)
		}
		for k := 0; k < 3; k++ {
			idx, err := lx.count("vertex index")
			if err != nil {
				return nil, fmt.Errorf("assets: face %d: %w", i, err)
			}
			if idx >= nv {
				return nil, fmt.Errorf("assets: face %d references vertex %d of %d: %w", i, idx, nv, ErrMalformedMesh)
			}
			off.Faces[i][k] = idx
		}
	}
	return off, nil
}

type offLexer struct {
	in *parse.Input
}

// next returns the next whitespace separated token, or nil at end of input.
func (l *offLexer) next() []byte {
	for {
		for parse.IsWhitespace(l.in.Peek(0)) {
			l.in.Move(1)
		}
		if l.in.Peek(0) != '#' {
			break
		}
		for c := l.in.Peek(0); c != 0 && !parse.IsNewline(c); c = l.in.Peek(0) {
			l.in.Move(1)
		}
	}
	l.in.Skip()
	for c := l.in.Peek(0); c != 0 && !parse.IsWhitespace(c); c = l.in.Peek(0) {
		l.in.Move(1)
	}
	return l.in.Shift()
}

func (l *offLexer) count(what string) (int, error) {
	tok := l.next()
	n, used := strconv.ParseInt(tok)
	if len(tok) == 0 || used != len(tok) || n < 0 {
		return 0, fmt.Errorf("bad %s %q: %w", what, tok, ErrMalformedMesh)
	}
	return int(n), nil
}

func (l *offLexer) float() (float32, error) {
	tok := l.next()
	f, used := strconv.ParseFloat(tok)
	if len(tok) == 0 || used != len(tok) {
		return 0, fmt.Errorf("bad coordinate %q: %w", tok, ErrMalformedMesh)
	}
	return float32(f), nil
}
