package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/zvmtrace/systemcontracts"
	"github.com/ethpandaops/zvmtrace/types"
	"github.com/ethpandaops/zvmtrace/utils"
)

var bundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "Build the system contract bundles and print their code hashes",
	Run: func(cmd *cobra.Command, args []string) {
		runBundles(cmd)
	},
}

func init() {
	bundlesCmd.Flags().String("source", "", "bytecode source: built-in, local or built-in-no-security")
	rootCmd.AddCommand(bundlesCmd)
}

func runBundles(cmd *cobra.Command) {
	logger := logrus.StandardLogger().WithField("module", "bundles")

	sourceValue := utils.Config.SystemContracts.Source
	if flagValue, _ := cmd.Flags().GetString("source"); flagValue != "" {
		sourceValue = flagValue
	}
	source, err := systemcontracts.ParseBytecodeSource(sourceValue)
	if err != nil {
		logger.Fatalf("invalid --source value: %v", err)
	}

	contracts := systemcontracts.MustNew(source, utils.Config)

	bundles := []struct {
		intent types.ExecutionIntent
		bundle *systemcontracts.ContractBundle
	}{
		{types.IntentVerifyExecute, contracts.ForIntent(types.IntentVerifyExecute)},
		{types.IntentEstimateFee, contracts.ForIntent(types.IntentEstimateFee)},
		{types.IntentEthCall, contracts.ForIntent(types.IntentEthCall)},
	}

	for _, entry := range bundles {
		fmt.Printf("%-14v bootloader: %v (%v bytes)  default account: %v (%v bytes)\n",
			entry.intent,
			entry.bundle.Bootloader.Hash.Hex(),
			len(entry.bundle.Bootloader.Code),
			entry.bundle.DefaultAccount.Hash.Hex(),
			len(entry.bundle.DefaultAccount.Code),
		)
	}
}
