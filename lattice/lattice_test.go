package lattice

import (
	"math"
	"testing"
)

func testBounds() Bounds {
	return NewBounds(4, 4, 5)
}

func TestNewBounds(t *testing.T) {
	b := testBounds()
	if b.MinX != -4 || b.MaxX != 3 || b.MinZ != -4 || b.MaxZ != 3 {
		t.Errorf("horizontal bounds = %+v, want x,z in [-4,3]", b)
	}
	if b.MinY != 0 || b.MaxY != 5 {
		t.Errorf("vertical bounds = [%d,%d], want [0,5]", b.MinY, b.MaxY)
	}
	if b.Width() != 8 || b.Depth() != 8 {
		t.Errorf("Width/Depth = %d/%d, want 8/8", b.Width(), b.Depth())
	}
}

func TestKeyClamping(t *testing.T) {
	b := testBounds()
	tests := []struct {
		name    string
		x, y, z float64
		want    Key
	}{
		{"origin", 0, 0, 0, Key{0, 0, 0}},
		{"inside fractional", 1.7, 2.2, -0.5, Key{1, 2, -1}},
		{"past max", 12, 99, 7.9, Key{3, 5, 3}},
		{"past min", -12, -3, -100, Key{-4, 0, -4}},
		{"wall drift", 3.4, 5.4, -4.01, Key{3, 5, -4}},
		{"nan", math.NaN(), math.NaN(), math.NaN(), Key{-4, 0, -4}},
		{"infinity", math.Inf(1), math.Inf(-1), math.Inf(1), Key{3, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Key(tt.x, tt.y, tt.z)
			if got != tt.want {
				t.Errorf("Key(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
			if !b.Contains(got) {
				t.Errorf("Key(%v, %v, %v) = %v lies outside bounds", tt.x, tt.y, tt.z, got)
			}
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	b := testBounds()
	for x := -10.0; x <= 10; x += 0.75 {
		for y := -3.0; y <= 9; y += 1.25 {
			for z := -7.0; z <= 7; z += 1.5 {
				k := b.Key(x, y, z)

				clamped := b.Key(
					math.Max(float64(b.MinX), math.Min(float64(b.MaxX), x)),
					math.Max(float64(b.MinY), math.Min(float64(b.MaxY), y)),
					math.Max(float64(b.MinZ), math.Min(float64(b.MaxZ), z)),
				)
				if k != clamped {
					t.Fatalf("Key(%v,%v,%v) = %v, Key(clamped) = %v", x, y, z, k, clamped)
				}

				again := b.Key(float64(k.X), float64(k.Y), float64(k.Z))
				if again != k {
					t.Fatalf("Key not idempotent: %v -> %v", k, again)
				}
				if b.Clamp(k) != k {
					t.Fatalf("Clamp(%v) = %v, want unchanged", k, b.Clamp(k))
				}
			}
		}
	}
}

func TestSetGetOccupied(t *testing.T) {
	l := New(testBounds())
	k := Key{1, 2, 3}

	if l.Occupied(k) || l.Get(k) != nil {
		t.Fatal("empty lattice reports occupied cell")
	}

	a := NewBubble(1, Red)
	l.Set(k, a)
	if l.Get(k) != a || !l.Occupied(k) {
		t.Fatal("Set did not store bubble")
	}

	b := NewBubble(2, Blue)
	l.Set(k, b)
	if l.Get(k) != b {
		t.Error("Set should overwrite unconditionally")
	}

	l.Set(k, nil)
	if l.Occupied(k) || l.Len() != 0 {
		t.Error("Set(nil) should clear the cell")
	}
}

func TestSetClampsKey(t *testing.T) {
	l := New(testBounds())
	b := NewBubble(1, Green)
	l.Set(Key{40, -2, 9}, b)

	want := Key{3, 0, 3}
	if l.Get(want) != b {
		t.Errorf("out-of-range Set should land in %v", want)
	}
	if l.Get(Key{40, -2, 9}) != b {
		t.Error("Get should clamp the same way Set does")
	}
}

func TestRemove(t *testing.T) {
	l := New(testBounds())
	b := NewBubble(1, Red)
	other := NewBubble(2, Red)

	// Duplicate registration is tolerated and fully undone.
	l.Set(Key{0, 1, 0}, b)
	l.Set(Key{0, 2, 0}, b)
	l.Set(Key{1, 1, 0}, other)

	if n := l.Remove(b); n != 2 {
		t.Errorf("Remove returned %d, want 2", n)
	}
	if l.Occupied(Key{0, 1, 0}) || l.Occupied(Key{0, 2, 0}) {
		t.Error("Remove left a reference behind")
	}
	if l.Get(Key{1, 1, 0}) != other {
		t.Error("Remove touched an unrelated bubble")
	}

	if n := l.Remove(b); n != 0 {
		t.Errorf("second Remove returned %d, want 0", n)
	}
	if n := l.Remove(nil); n != 0 {
		t.Errorf("Remove(nil) returned %d, want 0", n)
	}
}

func TestKeysAndLayer(t *testing.T) {
	l := New(testBounds())
	l.Set(Key{1, 5, 0}, NewBubble(1, Red))
	l.Set(Key{-1, 5, 0}, NewBubble(2, Red))
	l.Set(Key{0, 2, 0}, NewBubble(3, Red))

	keys := l.Keys()
	want := []Key{{0, 2, 0}, {-1, 5, 0}, {1, 5, 0}}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], want[i])
		}
	}

	if top := l.Layer(5); len(top) != 2 {
		t.Errorf("Layer(5) has %d cells, want 2", len(top))
	}
	if empty := l.Layer(4); len(empty) != 0 {
		t.Errorf("Layer(4) has %d cells, want 0", len(empty))
	}

	l.Clear()
	if l.Len() != 0 {
		t.Error("Clear left cells behind")
	}
}

func TestColorCycler(t *testing.T) {
	c := NewColorCycler(4, DefaultColorStep)
	want := []Color{Red, Blue, Green, Yellow, Yellow, Red, Blue, Green, Green, Yellow}
	for i, w := range want {
		if got := c.Next(); got != w {
			t.Errorf("Next() #%d = %v, want %v", i, got, w)
		}
	}

	c.Reset()
	if got := c.Next(); got != Red {
		t.Errorf("after Reset, Next() = %v, want red", got)
	}
}

func TestColorCyclerStaysInPalette(t *testing.T) {
	for size := 1; size <= MaxPalette+2; size++ {
		c := NewColorCycler(size, 0)
		for i := 0; i < 200; i++ {
			if got := int(c.Next()); got >= c.Size() {
				t.Fatalf("size %d: color %d outside palette", size, got)
			}
		}
	}
}
