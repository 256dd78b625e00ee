package sparse

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 256, DefaultNullValue)
	M.Set(2, 'a', 4711)
	M.Set(0, 'z', 1)
	M.Set(9, 0, 2)
	if v := M.Value(2, 'a'); v != 4711 {
		t.Errorf("expected M(2,a) to be 4711, is %d", v)
	}
	if v := M.Value(2, 'b'); v != M.NullValue() {
		t.Errorf("expected M(2,b) to be null, is %d", v)
	}
	M.Set(2, 'a', 5)
	if v := M.Value(2, 'a'); v != 5 {
		t.Errorf("expected M(2,a) to be overwritten with 5, is %d", v)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
}

func TestMatrixRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(3, 3, -1)
	M.Set(2, 2, 8).Set(0, 1, 1).Set(1, 0, 3).Set(0, 0, 0)
	var got []int32
	M.Each(func(i, j int, v int32) {
		got = append(got, v)
	})
	want := []int32{0, 1, 3, 8}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, have %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry #%d: expected %d, have %d", i, want[i], got[i])
		}
	}
	if row := M.Row(0); len(row) != 2 || row[1] != 1 {
		t.Errorf("unexpected row 0: %v", row)
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Set() outside of dimensions to panic")
		}
	}()
	NewIntMatrix(2, 2, -1).Set(2, 0, 1)
}
