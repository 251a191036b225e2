package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evasion/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List hunter and prey policies",
	Long:  `Shows every hunter and prey policy that can be passed to run and watch.`,
	Args:  cobra.NoArgs,
	Run:   runPolicies,
}

func runPolicies(_ *cobra.Command, _ []string) {
	printPolicies("Hunters", registry.Hunters())
	fmt.Println()
	printPolicies("Prey", registry.Preys())
	fmt.Println()
	fmt.Println("Run 'evasion run --hunter <id> --prey <id>' to play them against each other.")
}

func printPolicies(title string, infos []registry.PolicyInfo) {
	fmt.Printf("%s:\n\n", title)
	if len(infos) == 0 {
		fmt.Println("  (none registered)")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, p := range infos {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, p := range infos {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Description)
	}
}
