package awgn

import (
	"errors"
	"testing"
)

func TestParseScheme(t *testing.T) {
	tcs := []struct {
		name string
		eout Scheme
		eErr bool
	}{
		{name: "bpsk", eout: BPSK},
		{name: "qpsk", eout: QPSK},
		{name: " QPSK ", eout: QPSK},
		{name: "Bpsk", eout: BPSK},
		{name: "16qam", eErr: true},
		{name: "", eErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseScheme(tc.name)
			if tc.eErr {
				if !errors.Is(err, ErrInvalidScheme) {
					t.Fatalf("ParseScheme(%q) error == %v, want ErrInvalidScheme", tc.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s != tc.eout {
				t.Errorf("ParseScheme(%q) == %v, want %v", tc.name, s, tc.eout)
			}
		})
	}
}

func TestSchemeProperties(t *testing.T) {
	tcs := []struct {
		s    Scheme
		name string
		bps  int
		eErr bool
	}{
		{BPSK, "bpsk", 1, false},
		{QPSK, "qpsk", 2, false},
		{0, "Scheme(0)", 0, true},
		{Scheme(7), "Scheme(7)", 0, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.String(); got != tc.name {
				t.Errorf("String() == %q, want %q", got, tc.name)
			}
			if got := tc.s.BitsPerSymbol(); got != tc.bps {
				t.Errorf("BitsPerSymbol() == %d, want %d", got, tc.bps)
			}
			if err := tc.s.Validate(); (err != nil) != tc.eErr {
				t.Errorf("Validate() == %v, want error: %v", err, tc.eErr)
			}
		})
	}
}

func TestParseSchemeRoundTrip(t *testing.T) {
	for _, s := range Schemes {
		got, err := ParseScheme(s.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != s {
			t.Errorf("ParseScheme(%q) == %v, want %v", s.String(), got, s)
		}
	}
}
