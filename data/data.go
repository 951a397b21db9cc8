// Package data embeds the seed catalog and bootstrap user files.
package data

import "embed"

// FS holds product-groups.csv, the pg-<id>-products.csv files and users.csv.
//
//go:embed *.csv
var FS embed.FS
