package datum

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		d    *Datum
		want bool
	}{
		{Nil, false},
		{False, false},
		{True, true},
		{NewInt(0), true},
		{NewStringFrom(""), true},
		{NewArray(nil), true},
	}
	for _, c := range cases {
		if got := c.d.Truthy(); got != c.want {
			t.Errorf("Truthy(%s) = %v, want %v", c.d.Repr(), got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(NewInt(3), NewInt(3)) {
		t.Fatal("3 == 3 should hold")
	}
	if Equal(NewInt(3), NewStringFrom("3")) {
		t.Fatal("int 3 should not equal string \"3\"")
	}
	a := NewArray([]*Datum{NewInt(1), NewStringFrom("x")})
	b := NewArray([]*Datum{NewInt(1), NewStringFrom("x")})
	if !Equal(a, b) {
		t.Fatal("arrays with equal elements should be equal")
	}
}

func TestGarbageList(t *testing.T) {
	gl := NewGarbageList()
	for i := 0; i < 5; i++ {
		gl.Track(NewInt(int64(i)))
	}
	if gl.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", gl.Len())
	}
	gl.Sweep()
	if gl.Len() != 0 {
		t.Fatalf("Len() after Sweep = %d, want 0", gl.Len())
	}
}

func TestBuilderInsert(t *testing.T) {
	b := NewBuilder(0)
	b.WriteString("helloworld")
	b.Insert(5, ", ")
	if got := b.String(); got != "hello, world" {
		t.Fatalf("String() = %q", got)
	}
}
