package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// emit writes v as one JSON document when --json is set, and text otherwise.
func (a *app) emit(w io.Writer, v any, text func(io.Writer)) error {
	if a.jsonOut {
		return json.NewEncoder(w).Encode(v)
	}
	text(w)
	return nil
}

type membership struct {
	Item    string `json:"item"`
	Present bool   `json:"present"`
}

type insertion struct {
	Item     string `json:"item"`
	Existing bool   `json:"existing"`
}

type added struct {
	Bucket string `json:"bucket"`
	Items  int    `json:"items"`
}

type hashOffset struct {
	Name   string `json:"name"`
	Offset uint64 `json:"offset"`
}

type offsetReport struct {
	Item     string       `json:"item"`
	BitSpace uint64       `json:"bit_space"`
	Hashes   []hashOffset `json:"hashes"`
	Offsets  []uint64     `json:"offsets"`
}

type planReport struct {
	Members           float64 `json:"members"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	BitArraySize      float64 `json:"bit_array_size"`
	HashFunctionCount uint32  `json:"hash_function_count"`
	BitSpace          uint64  `json:"bit_space"`
	Bytes             uint64  `json:"bytes"`
}

type hashList struct {
	Hashes  []string `json:"hashes"`
	Default []string `json:"default"`
}

type benchReport struct {
	Bucket            string  `json:"bucket"`
	Count             int     `json:"count"`
	BitSpace          uint64  `json:"bit_space"`
	Hashes            int     `json:"hashes"`
	FalsePositives    int     `json:"false_positives"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	ExpectedRate      float64 `json:"expected_rate"`
	AddsPerSecond     float64 `json:"adds_per_second"`
	ProbesPerSecond   float64 `json:"probes_per_second"`
}

func (r benchReport) text(w io.Writer) {
	fmt.Fprintf(w, "%s %d members into %d bits with %d hashes\n", bold("bench"), r.Count, r.BitSpace, r.Hashes)
	fmt.Fprintf(w, "  adds/s:    %.0f\n", r.AddsPerSecond)
	fmt.Fprintf(w, "  probes/s:  %.0f\n", r.ProbesPerSecond)
	fmt.Fprintf(w, "  false positives: %d (%.4f%%, expected %.4f%%)\n",
		r.FalsePositives, r.FalsePositiveRate*100, r.ExpectedRate*100)
}
