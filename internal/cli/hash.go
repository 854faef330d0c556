package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	hashing "github.com/LeJamon/goRentald/internal/crypto/common"
	"github.com/spf13/cobra"
)

var hashAlgorithm string

var hashOfferCmd = &cobra.Command{
	Use:   "hash-offer [offer.json|-]",
	Short: "Compute the hash identifying an offer",
	Long: `Read an offer as JSON from a file, or from stdin when the argument is
omitted or "-", and print the hash the marketplace stores it under. The hash
is computed locally; use "rpc hash_offer" to ask a running server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := hashing.HashByName(hashAlgorithm)
		if err != nil {
			return err
		}
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		offer, err := decodeOffer(raw)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), types.Hash(fn(offer.Serialize())).String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashOfferCmd)
	hashOfferCmd.Flags().StringVar(&hashAlgorithm, "hash", hashing.HashSha512Half, "hash algorithm (sha512half, keccak256)")
}

// readInput returns the contents of args[0], or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

// decodeOffer accepts either a bare offer or an {"offer": ...} wrapper.
func decodeOffer(raw []byte) (*rental.Offer, error) {
	var wrapped struct {
		Offer *rental.Offer `json:"offer"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Offer != nil {
		return wrapped.Offer, nil
	}
	var offer rental.Offer
	if err := json.Unmarshal(raw, &offer); err != nil {
		return nil, fmt.Errorf("decode offer: %w", err)
	}
	return &offer, nil
}

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}
