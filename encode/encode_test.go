package encode

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hwconf/yamlpp/ir"
	"github.com/hwconf/yamlpp/parse"
)

func kv(k string, v *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: ir.FromString(k), Val: v}
}

func TestEncode(t *testing.T) {
	ten, one := int64(10), int64(1)
	mac, err := ir.ParseMACAddress("aa:bb:cc:dd:ee:ff")
	if err != nil {
		t.Fatal(err)
	}
	ip, err := ir.ParseIPAddress("192.168.1.1")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		in   *ir.Node
		want string
	}{
		{
			name: "empty object",
			in:   ir.EmptyObject(),
			want: "{}\n",
		},
		{
			name: "empty array",
			in:   ir.FromSlice(nil),
			want: "[]\n",
		},
		{
			name: "plain mapping",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("name", ir.FromString("kitchen")),
				kv("port", ir.FromInt(6053)),
			}),
			want: "name: kitchen\nport: 6053\n",
		},
		{
			name: "nested mapping in array",
			in: ir.FromSlice([]*ir.Node{
				ir.FromKeyVals([]ir.KeyVal{kv("a", ir.FromInt(1))}),
			}),
			want: "-\n  a: 1\n",
		},
		{
			name: "null entries omitted",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("a", ir.Null()),
				kv("b", ir.FromInt(1)),
			}),
			want: "b: 1\n",
		},
		{
			name: "null omission is recursive",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("a", ir.FromKeyVals([]ir.KeyVal{kv("b", ir.Null())})),
				kv("c", ir.FromInt(1)),
			}),
			want: "a: {}\nc: 1\n",
		},
		{
			name: "null kept in sequences",
			in:   ir.FromSlice([]*ir.Node{ir.Null(), ir.FromInt(1)}),
			want: "- null\n- 1\n",
		},
		{
			name: "single unit duration",
			in:   ir.FromScalar(ir.TimePeriod{Seconds: &ten}),
			want: "10s\n",
		},
		{
			name: "multi unit duration renders as mapping",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("delay", ir.FromScalar(ir.TimePeriod{Seconds: &ten, Minutes: &one})),
			}),
			want: "delay:\n  seconds: 10\n  minutes: 1\n",
		},
		{
			name: "hex int renders as decimal",
			in:   ir.FromKeyVals([]ir.KeyVal{kv("addr", ir.FromScalar(ir.HexInt(0x12)))}),
			want: "addr: 18\n",
		},
		{
			name: "ip address",
			in:   ir.FromKeyVals([]ir.KeyVal{kv("ip", ir.FromScalar(ip))}),
			want: "ip: 192.168.1.1\n",
		},
		{
			name: "mac address",
			in:   ir.FromKeyVals([]ir.KeyVal{kv("mac", ir.FromScalar(mac))}),
			want: "mac: aa:bb:cc:dd:ee:ff\n",
		},
		{
			name: "uuid",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("id", ir.FromScalar(ir.UUID{UUID: uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")})),
			}),
			want: "id: 123e4567-e89b-12d3-a456-426614174000\n",
		},
		{
			name: "id renders bare id",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("sensor", ir.FromScalar(ir.ID{Name: "sensor.Sensor", ID: "my_sensor"})),
			}),
			want: "sensor: my_sensor\n",
		},
		{
			name: "lambda block literal",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("code", ir.FromScalar(ir.Lambda("if (x > 3) { return 1; }\nreturn 0;"))),
			}),
			want: "code: !lambda |-\n  if (x > 3) { return 1; }\n  return 0;\n",
		},
		{
			name: "unresolved directive",
			in: ir.FromKeyVals([]ir.KeyVal{
				kv("pw", ir.FromDirective("secret", ir.FromString("wifi"))),
			}),
			want: "pw: !secret wifi\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dump(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestNumericLookingStringStaysString(t *testing.T) {
	out, err := Dump(ir.FromKeyVals([]ir.KeyVal{kv("v", ir.FromString("3"))}))
	if err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	v := node.Get("v")
	if v == nil || v.Type != ir.StringType || v.String != "3" {
		t.Fatalf("string \"3\" did not survive the round trip: %+v\noutput was:\n%s", v, out)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		"a: 1\nb:\n  - x\n  - y\nc:\n  d: true\n  e: 2.5\n",
		"- 1\n- two\n- - nested\n",
		"top:\n  mid:\n    leaf: value\n",
		"{}\n",
	}
	for _, doc := range docs {
		first, err := parse.Parse([]byte(doc))
		if err != nil {
			t.Fatalf("parse %q: %v", doc, err)
		}
		out, err := Dump(first)
		if err != nil {
			t.Fatalf("dump %q: %v", doc, err)
		}
		second, err := parse.Parse(out)
		if err != nil {
			t.Fatalf("reparse of %q failed: %v\noutput was:\n%s", doc, err, out)
		}
		if !ir.Equal(first, second) {
			t.Errorf("round trip of %q not value-equal\noutput was:\n%s", doc, out)
		}
	}
}

func TestLambdaRoundTripsAsCode(t *testing.T) {
	in := ir.FromKeyVals([]ir.KeyVal{
		kv("code", ir.FromScalar(ir.Lambda("return id(x).state;"))),
	})
	out, err := Dump(in)
	if err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	code := node.Get("code")
	if code == nil || code.Type != ir.DirectiveType || code.Directive != "lambda" {
		t.Fatalf("lambda did not round trip as a lambda tag: %+v", code)
	}
	if code.Values[0].String != "return id(x).state;" {
		t.Errorf("lambda text = %q", code.Values[0].String)
	}
}

func TestMustString(t *testing.T) {
	got := MustString(ir.FromKeyVals([]ir.KeyVal{kv("a", ir.FromInt(1))}))
	if got != "a: 1" {
		t.Errorf("MustString = %q", got)
	}
}
