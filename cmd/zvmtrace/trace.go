package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/zvmtrace/formatter"
	"github.com/ethpandaops/zvmtrace/services"
	"github.com/ethpandaops/zvmtrace/types"
	"github.com/ethpandaops/zvmtrace/utils"
)

var traceCmd = &cobra.Command{
	Use:   "trace <trace-file.json>",
	Short: "Render a transaction trace dump in a human readable way",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTrace(cmd, args[0])
	},
}

func init() {
	traceCmd.Flags().String("show-calls", "", "which call frames to show: all, none, user or system")
	traceCmd.Flags().Bool("resolve-hashes", false, "resolve function selectors and event topics via the signature lookup services")
	traceCmd.Flags().Bool("show-storage-logs", false, "print the storage access log")
	traceCmd.Flags().Bool("show-vm-details", false, "print the VM execution summary")
	traceCmd.Flags().Bool("show-events", false, "print emitted events")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, traceFile string) {
	logger := logrus.StandardLogger().WithField("module", "trace")

	showCalls := utils.Config.Trace.ShowCalls
	if flagValue, _ := cmd.Flags().GetString("show-calls"); flagValue != "" {
		showCalls = flagValue
	}
	displayMode, err := types.ParseDisplayMode(showCalls)
	if err != nil {
		logger.Fatalf("invalid --show-calls value: %v", err)
	}

	options := &formatter.TraceOptions{
		ShowCalls:       displayMode,
		ResolveHashes:   utils.Config.Trace.ResolveHashes,
		ShowStorageLogs: utils.Config.Trace.ShowStorageLogs,
		ShowVMDetails:   utils.Config.Trace.ShowVMDetails,
		ShowEvents:      utils.Config.Trace.ShowEvents,
	}
	if flagValue, _ := cmd.Flags().GetBool("resolve-hashes"); flagValue {
		options.ResolveHashes = true
	}
	if flagValue, _ := cmd.Flags().GetBool("show-storage-logs"); flagValue {
		options.ShowStorageLogs = true
	}
	if flagValue, _ := cmd.Flags().GetBool("show-vm-details"); flagValue {
		options.ShowVMDetails = true
	}
	if flagValue, _ := cmd.Flags().GetBool("show-events"); flagValue {
		options.ShowEvents = true
	}

	if utils.Config.Trace.DisableColors {
		color.NoColor = true
	}

	traceJson, err := os.ReadFile(traceFile)
	if err != nil {
		logger.Fatalf("error reading trace file: %v", err)
	}
	trace := &types.TransactionTrace{}
	err = json.Unmarshal(traceJson, trace)
	if err != nil {
		logger.Fatalf("error parsing trace file %v: %v", traceFile, err)
	}

	directory := services.MustNewAddressDirectory()
	output := &formatter.BufferWriter{}
	traceFormatter := formatter.NewFormatter(directory, services.GlobalSelectorResolverService, output)
	traceFormatter.PrintTransaction(trace, options)

	for _, line := range output.Lines {
		fmt.Println(line)
	}
}
