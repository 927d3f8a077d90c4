package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/serialport"
)

// Set by the linker: -ldflags "-X main.version=..."
var version = "dev"

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices [filter]",
		Short: "List the supported devices",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}
			return listDevices(cmd.OutOrStdout(), filter)
		},
	}
}

func listDevices(w io.Writer, filter string) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFAMILY\tPROGRAM\tDATA\tCONFIG\tID")
	for _, d := range device.All() {
		if filter != "" && !strings.Contains(d.Name, filter) {
			continue
		}
		id := "-"
		if d.HasID() {
			id = fmt.Sprintf("0x%04X", d.DeviceID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d %s\t%d %s\t%d\t%s\n",
			d.Name, d.Family, d.ProgSize, d.ProgType, d.DataSize, d.DataType, d.ConfSize, id)
	}
	return tw.Flush()
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List the serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := serialport.List()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no serial ports found")
				return nil
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "picprog %s\n", version)
		},
	}
}
