package keyspace

import "testing"

func TestLPushRPushOrder(t *testing.T) {
	ks := New()
	if _, err := ks.RPush("l", "a", "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := ks.LPush("l", "c", "d"); err != nil {
		t.Fatal(err)
	}
	// LPush "c" then "d": each prepends, so final head-to-tail is d, c, a, b.
	got, err := ks.LRange("l", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"d", "c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestLPopRPopCount(t *testing.T) {
	ks := New()
	ks.RPush("l", "a", "b", "c", "d")

	popped, ok, err := ks.LPop("l", 2)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if popped[0] != "a" || popped[1] != "b" {
		t.Fatalf("unexpected LPop result: %v", popped)
	}

	popped, ok, err = ks.RPop("l", 2)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if popped[0] != "d" || popped[1] != "c" {
		t.Fatalf("unexpected RPop result: %v", popped)
	}

	if n, _ := ks.LLen("l"); n != 0 {
		t.Fatalf("expected list to be empty, got len=%d", n)
	}
	if _, ok, _ := ks.LPop("l", 1); ok {
		t.Fatal("expected the now-empty list to have been deleted")
	}
}

func TestLRangeNegativeIndices(t *testing.T) {
	ks := New()
	ks.RPush("l", "a", "b", "c", "d", "e")

	cases := []struct {
		start, stop int
		want        []string
	}{
		{0, -1, []string{"a", "b", "c", "d", "e"}},
		{-3, -1, []string{"c", "d", "e"}},
		{-100, 2, []string{"a", "b", "c"}},
		{3, 1, []string{}},
		{10, 20, []string{}},
	}
	for _, c := range cases {
		got, err := ks.LRange("l", c.start, c.stop)
		if err != nil {
			t.Fatalf("LRange(%d,%d): %v", c.start, c.stop, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("LRange(%d,%d) = %v, want %v", c.start, c.stop, got, c.want)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Fatalf("LRange(%d,%d) = %v, want %v", c.start, c.stop, got, c.want)
			}
		}
	}
}

func TestListWrongType(t *testing.T) {
	ks := New()
	ks.Set("s", "x", SetOpts{})
	if _, err := ks.LPush("s", "y"); err == nil {
		t.Fatal("expected WRONGTYPE error")
	}
}
