package core

import "testing"

func TestMat4_Inverse(t *testing.T) {
	m := Translate(NewVec3(1, 2, 3)).Mul(RotateAxis(1, 0.7)).Mul(Scale(NewVec3(2, 3, 4)))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Expected invertible matrix, got %v", err)
	}

	p := NewVec3(0.3, -1.2, 5)
	back := inv.TransformPoint(m.TransformPoint(p))
	if back.Subtract(p).Length() > 1e-9 {
		t.Errorf("Expected round trip to %v, got %v", p, back)
	}

	if _, err := Scale(NewVec3(1, 0, 1)).Inverse(); err != ErrSingularMatrix {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
}
