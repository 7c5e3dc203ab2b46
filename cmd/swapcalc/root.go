package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nmbroome/prediction-market-admin/internal/config"
	"github.com/nmbroome/prediction-market-admin/internal/logging"
	"github.com/nmbroome/prediction-market-admin/internal/service"
	"github.com/nmbroome/prediction-market-admin/pkg/cpmm"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "swapcalc",
		Short: "Constant-product AMM swap calculator",
		Long: `swapcalc computes what a trader receives from a constant-product pool
and the pool's reserves after the trade, charging a proportional fee on the
input side. The fee defaults to SWAP_FEE_RATE (0.003 when unset).

Examples:
  swapcalc quote --reserve-in 1000 --reserve-out 1000 --amount-in 100
  swapcalc swap --token-a ETH --reserve-a 50 --token-b USDC --reserve-b 150000 --input-token USDC --amount-in 3000`,
		SilenceUsage: true,
	}

	root.PersistentFlags().Float64("fee-rate", cpmm.DefaultFeeRate, "fee fraction charged on the input, in [0, 1)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newQuoteCmd(), newSwapCmd())
	return root
}

// engineFromFlags resolves the fee rate: an explicit --fee-rate wins over
// SWAP_FEE_RATE from the environment.
func engineFromFlags(cmd *cobra.Command) (cpmm.Engine, error) {
	var rate float64
	if cmd.Flags().Changed("fee-rate") {
		rate, _ = cmd.Flags().GetFloat64("fee-rate")
	} else {
		var err error
		if rate, err = config.FeeRateFromEnv(); err != nil {
			return cpmm.Engine{}, err
		}
	}

	engine, err := cpmm.NewEngine(rate)
	if err != nil {
		return cpmm.Engine{}, fmt.Errorf("fee rate %v: %w", rate, err)
	}
	return engine, nil
}

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the output amount for selling amount-in against two reserves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := engineFromFlags(cmd)
			if err != nil {
				return err
			}

			reserveIn, _ := cmd.Flags().GetFloat64("reserve-in")
			reserveOut, _ := cmd.Flags().GetFloat64("reserve-out")
			amountIn, _ := cmd.Flags().GetFloat64("amount-in")

			out, err := engine.Quote(reserveIn, reserveOut, amountIn)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatAmount(out))
			return err
		},
	}

	cmd.Flags().Float64("reserve-in", 0, "reserve of the token being sold")
	cmd.Flags().Float64("reserve-out", 0, "reserve of the token being bought")
	cmd.Flags().Float64("amount-in", 0, "amount sold into the pool")
	_ = cmd.MarkFlagRequired("reserve-in")
	_ = cmd.MarkFlagRequired("reserve-out")
	_ = cmd.MarkFlagRequired("amount-in")

	return cmd
}

type swapOutput struct {
	AmountOut       float64            `json:"amount_out"`
	NewReserveA     float64            `json:"new_reserve_a"`
	NewReserveB     float64            `json:"new_reserve_b"`
	Reserves        map[string]float64 `json:"reserves"`
	Fee             float64            `json:"fee"`
	PriceImpact     float64            `json:"price_impact"`
	SpotPriceBefore float64            `json:"spot_price_before"`
	SpotPriceAfter  float64            `json:"spot_price_after"`
}

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Apply a swap to a pool and print the output and new reserves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := engineFromFlags(cmd)
			if err != nil {
				return err
			}

			level, _ := cmd.Flags().GetString("log-level")
			svc := service.NewSwapService(logging.NewLogger(level, "text"), engine)

			var req service.SwapRequest
			req.TokenA, _ = cmd.Flags().GetString("token-a")
			req.ReserveA, _ = cmd.Flags().GetFloat64("reserve-a")
			req.TokenB, _ = cmd.Flags().GetString("token-b")
			req.ReserveB, _ = cmd.Flags().GetFloat64("reserve-b")
			req.InputToken, _ = cmd.Flags().GetString("input-token")
			req.AmountIn, _ = cmd.Flags().GetFloat64("amount-in")

			res, err := svc.Swap(context.Background(), req)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			return printSwap(cmd.OutOrStdout(), res, asJSON)
		},
	}

	cmd.Flags().String("token-a", "", "symbol of the pool's first token")
	cmd.Flags().Float64("reserve-a", 0, "reserve of token-a")
	cmd.Flags().String("token-b", "", "symbol of the pool's second token")
	cmd.Flags().Float64("reserve-b", 0, "reserve of token-b")
	cmd.Flags().String("input-token", "", "token sold into the pool (token-a or token-b)")
	cmd.Flags().Float64("amount-in", 0, "amount of input-token sold")
	cmd.Flags().BoolP("json", "j", false, "print the result as JSON")
	for _, name := range []string{"token-a", "reserve-a", "token-b", "reserve-b", "input-token", "amount-in"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func printSwap(w io.Writer, res cpmm.SwapResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(swapOutput{
			AmountOut:       res.AmountOut,
			NewReserveA:     res.Pool.A.Balance,
			NewReserveB:     res.Pool.B.Balance,
			Reserves:        res.Pool.Reserves(),
			Fee:             res.Fee,
			PriceImpact:     res.PriceImpact,
			SpotPriceBefore: res.SpotPriceBefore,
			SpotPriceAfter:  res.SpotPriceAfter,
		})
	}

	_, err := fmt.Fprintf(w,
		"amount out:    %s %s\nfee retained:  %s %s\nprice impact:  %.4f%%\nspot price:    %s -> %s %s/%s\nnew reserves:  %s %s, %s %s\n",
		formatAmount(res.AmountOut), res.OutputToken,
		formatAmount(res.Fee), res.InputToken,
		res.PriceImpact*100,
		formatAmount(res.SpotPriceBefore), formatAmount(res.SpotPriceAfter), res.OutputToken, res.InputToken,
		formatAmount(res.Pool.A.Balance), res.Pool.A.Symbol,
		formatAmount(res.Pool.B.Balance), res.Pool.B.Symbol,
	)
	return err
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
