package ir

import (
	"testing"
)

func TestPutKeepsOrderAndOverwrites(t *testing.T) {
	obj := EmptyObject()
	obj.Put(FromString("a"), FromInt(1))
	obj.Put(FromString("b"), FromInt(2))
	obj.Put(FromString("a"), FromInt(3))
	if len(obj.Fields) != 2 {
		t.Fatalf("want 2 entries, got %d", len(obj.Fields))
	}
	if obj.Fields[0].Key() != "a" || obj.Fields[1].Key() != "b" {
		t.Fatalf("entry order changed: %q, %q", obj.Fields[0].Key(), obj.Fields[1].Key())
	}
	if v := obj.Get("a"); v == nil || *v.Int64 != 3 {
		t.Fatalf("overwrite did not take: %v", v)
	}
}

func TestPutIfAbsent(t *testing.T) {
	obj := EmptyObject()
	obj.Put(FromString("a"), FromInt(1))
	if obj.PutIfAbsent(FromString("a"), FromInt(9)) {
		t.Fatal("PutIfAbsent replaced an existing entry")
	}
	if !obj.PutIfAbsent(FromString("b"), FromInt(2)) {
		t.Fatal("PutIfAbsent did not add a new entry")
	}
	if v := obj.Get("a"); *v.Int64 != 1 {
		t.Fatalf("a = %d, want 1", *v.Int64)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"null == null", Null(), Null(), true},
		{"null != bool", Null(), FromBool(false), false},
		{"int == int", FromInt(3), FromInt(3), true},
		{"int != int", FromInt(3), FromInt(4), false},
		{"int == float", FromInt(3), FromFloat(3.0), true},
		{"string == string", FromString("x"), FromString("x"), true},
		{"array order matters",
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			FromSlice([]*Node{FromInt(2), FromInt(1)}),
			false},
		{"object order matters",
			FromKeyVals([]KeyVal{{FromString("a"), FromInt(1)}, {FromString("b"), FromInt(2)}}),
			FromKeyVals([]KeyVal{{FromString("b"), FromInt(2)}, {FromString("a"), FromInt(1)}}),
			false},
		{"object equal",
			FromKeyVals([]KeyVal{{FromString("a"), FromInt(1)}}),
			FromKeyVals([]KeyVal{{FromString("a"), FromInt(1)}}),
			true},
		{"lambda equal",
			FromScalar(Lambda("return x;")),
			FromScalar(Lambda("return x;")),
			true},
		{"lambda != string", FromScalar(Lambda("x")), FromString("x"), false},
		{"directive equal",
			FromDirective("include", FromString("a.yaml")),
			FromDirective("include", FromString("a.yaml")),
			true},
		{"directive name differs",
			FromDirective("include", FromString("a.yaml")),
			FromDirective("secret", FromString("a.yaml")),
			false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{FromString("a"), FromSlice([]*Node{FromInt(1)})},
	})
	cp := orig.Clone()
	cp.Values[0].Values[0] = FromInt(9)
	if !Equal(orig.Get("a").Values[0], FromInt(1)) {
		t.Fatal("mutation of clone reached the original")
	}
}

func TestTimePeriodUnits(t *testing.T) {
	s, m := int64(10), int64(1)
	tp := TimePeriod{Seconds: &s}
	if !tp.IsSingle() {
		t.Fatal("single-unit period not detected")
	}
	if got := tp.String(); got != "10s" {
		t.Fatalf("String = %q, want 10s", got)
	}
	tp.Minutes = &m
	if tp.IsSingle() {
		t.Fatal("two-unit period reported single")
	}
	units := tp.Units()
	if len(units) != 2 || units[0].Unit != "seconds" || units[1].Unit != "minutes" {
		t.Fatalf("unexpected unit order: %+v", units)
	}
}

func TestTimePeriodAbbrevs(t *testing.T) {
	v := int64(5)
	tests := []struct {
		tp   TimePeriod
		want string
	}{
		{TimePeriod{Microseconds: &v}, "5us"},
		{TimePeriod{Milliseconds: &v}, "5ms"},
		{TimePeriod{Seconds: &v}, "5s"},
		{TimePeriod{Minutes: &v}, "5min"},
		{TimePeriod{Hours: &v}, "5h"},
		{TimePeriod{Days: &v}, "5d"},
	}
	for _, tt := range tests {
		if got := tt.tp.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestNewTimePeriod(t *testing.T) {
	tp, err := NewTimePeriod(map[string]int64{"seconds": 30})
	if err != nil {
		t.Fatal(err)
	}
	if tp.String() != "30s" {
		t.Fatalf("got %q", tp.String())
	}
	if _, err := NewTimePeriod(map[string]int64{"fortnights": 2}); err == nil {
		t.Fatal("unknown unit accepted")
	}
}
