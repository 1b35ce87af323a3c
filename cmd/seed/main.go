// Command seed generates a reproducible set of synthetic risk profiles for the
// Lumina Risk API and writes it to data/seed.json.
//
// Usage:
//
//	go run ./cmd/seed [-n 300] [-seed 42] [-out data/seed.json]
//
// Profile i is generated from seed+i, so any single record can be
// regenerated through GET /api/v1/profiles/synthetic?seed=<seed+i>.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"lumina/risk-api/internal/domain"
	"lumina/risk-api/internal/scoring"
	"lumina/risk-api/internal/synthetic"
)

type seedRecord struct {
	Seed    uint32             `json:"seed"`
	Profile domain.RiskProfile `json:"profile"`
}

func main() {
	n := flag.Int("n", 300, "number of profiles to generate")
	base := flag.Uint("seed", 42, "base seed; profile i uses seed+i")
	out := flag.String("out", "data/seed.json", "output file")
	flag.Parse()

	if *n < 0 {
		fmt.Fprintln(os.Stderr, "-n must not be negative")
		os.Exit(2)
	}

	profiles := synthetic.Batch(uint32(*base), *n)
	records := make([]seedRecord, len(profiles))
	bands := map[domain.RiskLevel]int{}
	for i, p := range profiles {
		records[i] = seedRecord{Seed: uint32(*base) + uint32(i), Profile: p}
		bands[scoring.Score(p).Band]++
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		fmt.Fprintf(os.Stderr, "encode error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d profiles → %s (low=%d medium=%d high=%d)\n",
		len(records), *out, bands[domain.RiskLow], bands[domain.RiskMedium], bands[domain.RiskHigh])
}
