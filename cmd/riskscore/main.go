// Command riskscore scores a single profile from the command line.
//
// Usage:
//
//	riskscore -seed 7              score a synthetic profile
//	riskscore -file profile.json   score a profile read from a file
//	riskscore < profile.json       score a profile read from stdin
//
// Output is a human-readable summary unless -json is given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"lumina/risk-api/internal/domain"
	"lumina/risk-api/internal/render"
	"lumina/risk-api/internal/scoring"
	"lumina/risk-api/internal/synthetic"
)

func main() {
	seed := flag.Int64("seed", -1, "generate a synthetic profile from this seed")
	file := flag.String("file", "", "read the profile from a JSON file (default stdin)")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *seed, *file, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "riskscore: %v\n", err)
		os.Exit(1)
	}
}

func run(stdin io.Reader, stdout io.Writer, seed int64, file string, asJSON bool) error {
	p, err := readProfile(stdin, seed, file)
	if err != nil {
		return err
	}
	res := scoring.Score(p)

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return render.Text(stdout, render.DefaultOptions(), p, res)
}

func readProfile(stdin io.Reader, seed int64, file string) (domain.RiskProfile, error) {
	if seed >= 0 {
		if seed > int64(^uint32(0)) {
			return domain.RiskProfile{}, fmt.Errorf("seed %d out of range", seed)
		}
		return synthetic.Generate(uint32(seed)), nil
	}

	r := stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return domain.RiskProfile{}, err
		}
		defer f.Close()
		r = f
	}

	var p domain.RiskProfile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return domain.RiskProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}
