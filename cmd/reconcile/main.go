package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dvoronin/iaa/internal/logger"
	"github.com/dvoronin/iaa/internal/recon"
)

func main() {
	var (
		bankPath   = flag.String("bank", "", "Path to the bank transactions JSON file")
		ledgerPath = flag.String("ledger", "", "Path to the ledger entries JSON file")
		outPath    = flag.String("out", "", "Write the match report to this file instead of stdout")
	)
	flag.Parse()

	log := logger.New()

	if *bankPath == "" || *ledgerPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: reconcile -bank PATH -ledger PATH [-out PATH]")
		os.Exit(2)
	}

	bank, err := readTransactions(*bankPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read bank transactions")
	}
	ledger, err := readTransactions(*ledgerPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read ledger entries")
	}

	result := recon.Reconcile(bank, ledger)
	log.Info().
		Int("matches", len(result.Matches)).
		Int("unmatched_bank", len(result.UnmatchedBank)).
		Int("unmatched_ledger", len(result.UnmatchedLedger)).
		Msg("Reconciliation complete")

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create output file")
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to write match report")
	}
}

func readTransactions(path string) ([]recon.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("readTransactions: read %q: %w", path, err)
	}
	var txns []recon.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("readTransactions: parse %q: %w", path, err)
	}
	return txns, nil
}
