// Package report formats simulation results for consumption by spreadsheets,
// plotting scripts and humans.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/alan-christopher/awgnber/awgn"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type column struct {
	name string
	expr string
}

var columns = []column{
	{"snr_db", `{{printf "%.2f" .SNRdB}}`},
	{"ber_sim", "{{.BER}}"},
	{"ber_theory", "{{.TheoreticalBER}}"},
	{"bit_errors", "{{.BitErrors}}"},
	{"bits", "{{.Bits}}"},
	{"ser_sim", "{{.SER}}"},
	{"ser_theory", "{{.TheoreticalSER}}"},
}

var line = template.Must(template.New("line").Parse(lineTmpl()))

// Header returns the CSV header line, without a trailing newline.
func Header() string {
	var names []string
	for _, c := range columns {
		names = append(names, c.name)
	}
	return strings.Join(names, ",")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, c.expr)
	}
	return strings.Join(els, ",") + "\n"
}

// WriteCSV writes a header followed by one row per result.
func WriteCSV(w io.Writer, results []awgn.Result) error {
	if _, err := fmt.Fprintln(w, Header()); err != nil {
		return err
	}
	for _, r := range results {
		if err := line.Execute(w, r); err != nil {
			return err
		}
	}
	return nil
}

// Summary renders a single result as a human-readable line.
func Summary(r awgn.Result) string {
	return fmt.Sprintf("SNR=%6.2f dB | BER=%e (theory %e) | errors=%d/%d",
		r.SNRdB, r.BER, r.TheoreticalBER, r.BitErrors, r.Bits)
}

// A Run describes the experiment a set of results came from.
type Run struct {
	Scheme awgn.Scheme
	Bits   int
	Seed   int64
	Reseed bool
}

// ToStruct converts a run and its results into a protobuf Struct.
func ToStruct(run Run, results []awgn.Result) (*structpb.Struct, error) {
	points := make([]interface{}, 0, len(results))
	for _, r := range results {
		points = append(points, map[string]interface{}{
			"snr_db":     number(r.SNRdB),
			"ber_sim":    r.BER,
			"ber_theory": r.TheoreticalBER,
			"bit_errors": r.BitErrors,
			"bits":       r.Bits,
			"ser_sim":    r.SER,
			"ser_theory": r.TheoreticalSER,
			"symbols":    r.Symbols,
			"sym_errors": r.SymbolErrors,
		})
	}
	return structpb.NewStruct(map[string]interface{}{
		"scheme":  run.Scheme.String(),
		"bits":    run.Bits,
		"seed":    run.Seed,
		"reseed":  run.Reseed,
		"results": points,
	})
}

// WriteJSON writes a run and its results as an indented JSON document.
func WriteJSON(w io.Writer, run Run, results []awgn.Result) error {
	st, err := ToStruct(run, results)
	if err != nil {
		return err
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// JSON has no representation for non-finite numbers.
func number(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}
