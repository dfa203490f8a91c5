package scan

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		a, b Metadata
		want Dichroism
	}{
		{
			name: "circular pair",
			a:    Metadata{Pol: "pc"},
			b:    Metadata{Pol: "nc"},
			want: XMCD,
		},
		{
			name: "circular pair reversed",
			a:    Metadata{Pol: "nc"},
			b:    Metadata{Pol: "pc"},
			want: XMCD,
		},
		{
			name: "circular pair uppercase",
			a:    Metadata{Pol: "PC"},
			b:    Metadata{Pol: "NC"},
			want: XMCD,
		},
		{
			name: "field sign flip",
			a:    Metadata{Pol: "pc", MagField: 5},
			b:    Metadata{Pol: "pc", MagField: -5},
			want: XMCD,
		},
		{
			name: "field flip beats linear pair",
			a:    Metadata{Pol: "lh", MagField: 2},
			b:    Metadata{Pol: "lv", MagField: -2},
			want: XMCD,
		},
		{
			name: "linear pair",
			a:    Metadata{Pol: "lh"},
			b:    Metadata{Pol: "lv"},
			want: XMLD,
		},
		{
			name: "linear pair reversed",
			a:    Metadata{Pol: "lv"},
			b:    Metadata{Pol: "lh"},
			want: XMLD,
		},
		{
			name: "same circular polarization",
			a:    Metadata{Pol: "pc", MagField: 5},
			b:    Metadata{Pol: "pc", MagField: 5},
			want: DichroismNone,
		},
		{
			name: "same linear polarization",
			a:    Metadata{Pol: "lh"},
			b:    Metadata{Pol: "lh"},
			want: DichroismNone,
		},
		{
			name: "mixed circular and linear",
			a:    Metadata{Pol: "pc"},
			b:    Metadata{Pol: "lv"},
			want: DichroismNone,
		},
		{
			name: "no polarization info",
			a:    Metadata{MagField: 3},
			b:    Metadata{MagField: 3},
			want: DichroismNone,
		},
		{
			name: "zero field never flips",
			a:    Metadata{Pol: "pc", MagField: 0},
			b:    Metadata{Pol: "pc", MagField: -5},
			want: DichroismNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.a, tc.b); got != tc.want {
				t.Fatalf("Classify(%+v, %+v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDichroismString(t *testing.T) {
	cases := []struct {
		d    Dichroism
		want string
	}{
		{XMCD, "xmcd"},
		{XMLD, "xmld"},
		{DichroismNone, "difference"},
	}

	for _, tc := range cases {
		if got := tc.d.String(); got != tc.want {
			t.Fatalf("%d.String() = %q, want %q", int(tc.d), got, tc.want)
		}
	}
}
