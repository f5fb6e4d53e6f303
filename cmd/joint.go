package cmd

import (
	"github.com/spf13/cobra"
)

var jointCmd = &cobra.Command{
	Use:   "joint",
	Short: "Fastener joint load distribution",
	Long: `Check input tables and distribute loads over a fastener joint.

Subcommands:
  check    - Read the joint and loads files and report missing data
  solve    - Calculate the load on every fastener
  history  - List solves stored in a SQLite history

The joint file lists the fasteners (CSV, or sheet "joint" of an XLSX):

  fastener_id,fastener_x_loc,fastener_y_loc,fastener_dia
  F1,0,0,4.8
  F2,25,0,4.8
  F3,25,20,4.8
  F4,0,20,4.8

The loads file lists the applied loads (CSV, or sheet "loads"):

  load_id,load_x_loc,load_y_loc,load_px,load_py,load_mz
  L1,60,10,0,-1500,0

Columns may be in any order; a header that differs from the layout
above is reported as a warning.`,
}

func init() {
	rootCmd.AddCommand(jointCmd)
}
