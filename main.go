// Package main is the entry point for the tmstats CLI tool, which folds
// Terraforming Mars replay records from Board Game Arena into award,
// milestone, card, draft and corporation statistics.
package main

import "github.com/HStrand/bga-tm-stats/cmd"

func main() {
	cmd.Execute()
}
