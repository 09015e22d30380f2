// Command ratescheck asks for a trade amount and prints the arbitrage table
// until the user cancels.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crypto-rates-checker/internal/arbitrage"
	"crypto-rates-checker/internal/platform/config"
	"crypto-rates-checker/internal/platform/logger"
	"crypto-rates-checker/internal/render"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
)

const (
	prompt      = `Enter the amount to sell (%s). "c" to cancel: `
	retryPrompt = `That is not a valid amount. Try again, or use "c" to cancel: `
)

var errCancelled = errors.New("cancelled")

func main() {
	config := config.GetConfig()
	defer logger.Sync()

	checker, err := arbitrage.NewCheckerFromConfig(config)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	in := bufio.NewReader(os.Stdin)
	for {
		amount, err := readAmount(in, os.Stdout, config.TradeCurrency)
		if err != nil {
			break
		}

		// Ctrl+C abandons the fetches in flight and returns to the prompt.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		report, err := checker.Check(ctx, amount)
		stop()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Query aborted: "+err.Error())
			continue
		}
		render.Report(os.Stdout, report, config.DecimalPlaces)
	}

	fmt.Fprintln(os.Stdout, "Done.")
}

// readAmount prompts until it reads a positive amount of currency. It returns
// errCancelled on "c" and io.EOF when the input ends.
func readAmount(in *bufio.Reader, out io.Writer, currency string) (decimal.Decimal, error) {
	message := fmt.Sprintf(prompt, currency)
	for {
		fmt.Fprint(out, message)
		line, err := in.ReadString('\n')
		input := strings.TrimSpace(line)
		if input == "" && err != nil {
			return decimal.Zero, err
		}
		if strings.EqualFold(input, "c") {
			return decimal.Zero, errCancelled
		}
		if amount, parseErr := arbitrage.ParseAmount(input); parseErr == nil {
			return amount, nil
		}
		if err != nil {
			return decimal.Zero, err
		}
		message = retryPrompt
	}
}
