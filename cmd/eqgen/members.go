package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	eqgeninternal "github.com/sublee/eqgen/internal/eqgen"
)

var membersCmd = &cobra.Command{
	Use:   "members [packages]",
	Short: "Print the members selected by Equal directives",
	Long: `Members prints the members each Equal directive selects. Hash, and String
without an option, use the same members.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMembers,
}

func runMembers(cmd *cobra.Command, args []string) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	tms, err := eqgeninternal.MainMembers(cmd.Context(), wd, os.Environ(), opts, args)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Type", "Mode", "#", "Member", "Site", "Kind", "Go Type"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoMergeCells(true)
	for _, tm := range tms {
		mode := tm.Mode.String()
		if tm.Super != nil {
			table.Append([]string{tm.Type, mode, "-", tm.Super.Field, "super", "", fmt.Sprint(tm.Super.Type)})
		}
		if len(tm.Members) == 0 {
			table.Append([]string{tm.Type, mode, "-", "", "", "", ""})
		}
		for i, m := range tm.Members {
			table.Append([]string{tm.Type, mode, strconv.Itoa(i + 1), m.Name, m.Site.String(), m.Kind.String(), fmt.Sprint(m.Type)})
		}
	}
	table.Render()

	if err != nil {
		printErrors(eqgeninternal.Errors(err))
		return errReported
	}
	return nil
}
