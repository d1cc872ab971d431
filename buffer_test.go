package rescale

import (
	"errors"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b, err := NewBuffer(3, 2)
	if err != nil {
		t.Fatalf("NewBuffer(3, 2) error = %v", err)
	}
	if len(b.Pix) != 24 || b.Len() != 6 {
		t.Errorf("NewBuffer(3, 2) len = %d, Len() = %d; want 24, 6", len(b.Pix), b.Len())
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		if _, err := NewBuffer(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewBuffer(%d, %d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestBufferValidate(t *testing.T) {
	tests := []struct {
		name string
		b    *Buffer
		want error
	}{
		{"nil", nil, ErrInvalidDimensions},
		{"zero height", &Buffer{Pix: nil, Width: 4, Height: 0}, ErrInvalidDimensions},
		{"too long", &Buffer{Pix: make([]uint8, 20), Width: 2, Height: 2}, ErrBufferSize},
		{"too short", &Buffer{Pix: make([]uint8, 12), Width: 2, Height: 2}, ErrBufferSize},
		{"ok", &Buffer{Pix: make([]uint8, 16), Width: 2, Height: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.b.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBufferAtSet(t *testing.T) {
	b, _ := NewBuffer(4, 3)
	b.Set(3, 2, 1, 2, 3, 4)

	if r, g, bl, a := b.At(3, 2); r != 1 || g != 2 || bl != 3 || a != 4 {
		t.Errorf("At(3, 2) = (%d, %d, %d, %d), want (1, 2, 3, 4)", r, g, bl, a)
	}
	if got := b.Pix[(2*4+3)*4:]; got[0] != 1 || got[3] != 4 {
		t.Errorf("pixel (3, 2) not stored at (y*w+x)*4: %v", got)
	}
}

func TestBufferAtOutOfRangePanics(t *testing.T) {
	b, _ := NewBuffer(2, 2)
	defer func() {
		if recover() == nil {
			t.Error("At(2, 0) did not panic")
		}
	}()
	b.At(2, 0)
}

func TestBufferClone(t *testing.T) {
	b, _ := NewBuffer(2, 1)
	b.Set(0, 0, 9, 9, 9, 9)

	c := b.Clone()
	c.Set(0, 0, 1, 1, 1, 1)

	if r, _, _, _ := b.At(0, 0); r != 9 {
		t.Error("Clone() shares pixel memory with the original")
	}
	if c.Width != 2 || c.Height != 1 {
		t.Errorf("Clone() size = %dx%d, want 2x1", c.Width, c.Height)
	}
}
