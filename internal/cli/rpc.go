package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/LeJamon/goRentald/internal/crypto"
	"github.com/LeJamon/goRentald/internal/rpc"
	"github.com/spf13/cobra"
)

// KeyEnv names the environment variable holding the default signing key.
const KeyEnv = "RENTALD_KEY"

var (
	rpcURL     string
	rpcKey     string
	rpcTimeout time.Duration
)

// rpcCmd represents the rpc command group
var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "RPC client commands",
	Long: `Call a running rentald server. Requests are signed with the key given by
--key or the RENTALD_KEY environment variable; without a key they are sent
anonymously.`,
}

func init() {
	rootCmd.AddCommand(rpcCmd)

	rpcCmd.PersistentFlags().StringVar(&rpcURL, "url", "http://127.0.0.1:5005/rpc", "JSON-RPC endpoint")
	rpcCmd.PersistentFlags().StringVar(&rpcKey, "key", "", "hex private key used to sign requests (default: $"+KeyEnv+")")
	rpcCmd.PersistentFlags().DurationVar(&rpcTimeout, "timeout", 30*time.Second, "request timeout")

	rpcCmd.AddCommand(
		pingCmd,
		serverInfoCmd,
		offerCommand("create_rental_offer", "Publish a rental offer"),
		offerCommand("cancel_rental_offer", "Cancel a rental offer"),
		offerCommand("delist_rental_offer", "Delist an offer and return custody"),
		offerCommand("end_rental", "End an expired rental"),
		offerCommand("hash_offer", "Hash an offer on the server"),
		acceptCmd,
		offerInfoCmd,
		rentalInfoCmd,
		nonceDeadlineCmd,
		roleDeadlineCmd,
		commitmentLinkCmd,
		eventsByOfferCmd,
		recentEventsCmd,
		callCmd,
	)
}

func signingKey() (*crypto.KeyPair, error) {
	hexKey := rpcKey
	if hexKey == "" {
		hexKey = os.Getenv(KeyEnv)
	}
	if hexKey == "" {
		return nil, nil
	}
	key, err := crypto.KeyFromHex(hexKey)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}
	return key, nil
}

// executeMethod calls method on the configured server and prints the result.
func executeMethod(cmd *cobra.Command, method string, params interface{}) error {
	key, err := signingKey()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	result, err := rpc.NewClient(rpcURL, key).Call(ctx, method, params)
	if err != nil {
		return err
	}
	var pretty interface{}
	if err := json.Unmarshal(result, &pretty); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(result))
		return nil
	}
	return printJSON(cmd, pretty)
}

func parseUint(name, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// =============================================================================
// SERVER COMMANDS
// =============================================================================

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd, "ping", nil)
	},
}

var serverInfoCmd = &cobra.Command{
	Use:   "server_info",
	Short: "Get server information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd, "server_info", nil)
	},
}

// =============================================================================
// OFFER COMMANDS
// =============================================================================

// offerCommand builds a command sending {"offer": <file contents>}.
func offerCommand(method, short string) *cobra.Command {
	return &cobra.Command{
		Use:   method + " [offer.json|-]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := offerArg(cmd, args)
			if err != nil {
				return err
			}
			return executeMethod(cmd, method, map[string]interface{}{"offer": offer})
		},
	}
}

func offerArg(cmd *cobra.Command, args []string) (json.RawMessage, error) {
	raw, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	offer, err := decodeOffer(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(offer)
}

var acceptCmd = &cobra.Command{
	Use:   "accept_rental_offer <duration-seconds> [offer.json|-]",
	Short: "Accept a rental offer",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, err := parseUint("duration", args[0])
		if err != nil {
			return err
		}
		offer, err := offerArg(cmd, args[1:])
		if err != nil {
			return err
		}
		return executeMethod(cmd, "accept_rental_offer", map[string]interface{}{
			"offer":    offer,
			"duration": duration,
		})
	},
}

// =============================================================================
// QUERY COMMANDS
// =============================================================================

var offerInfoCmd = &cobra.Command{
	Use:   "offer_info <offer_hash>",
	Short: "Get a stored offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd, "offer_info", map[string]interface{}{"offer_hash": args[0]})
	},
}

var rentalInfoCmd = &cobra.Command{
	Use:   "rental_info <offer_hash>",
	Short: "Get the rental recorded for an offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd, "rental_info", map[string]interface{}{"offer_hash": args[0]})
	},
}

var nonceDeadlineCmd = &cobra.Command{
	Use:   "nonce_deadline <lender> <nonce>",
	Short: "Get the deadline recorded for a lender nonce",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nonce, err := parseUint("nonce", args[1])
		if err != nil {
			return err
		}
		return executeMethod(cmd, "nonce_deadline", map[string]interface{}{
			"lender": args[0],
			"nonce":  nonce,
		})
	},
}

var roleDeadlineCmd = &cobra.Command{
	Use:   "role_deadline <role> <token_address> <asset_id>",
	Short: "Get the latest expiration a role may be granted until",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		assetID, err := parseUint("asset_id", args[2])
		if err != nil {
			return err
		}
		return executeMethod(cmd, "role_deadline", map[string]interface{}{
			"role":          args[0],
			"token_address": args[1],
			"asset_id":      assetID,
		})
	},
}

var commitmentLinkCmd = &cobra.Command{
	Use:   "commitment_link <token_address> <commitment_id>",
	Short: "Get the offer a commitment is locked for",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUint("commitment_id", args[1])
		if err != nil {
			return err
		}
		return executeMethod(cmd, "commitment_link", map[string]interface{}{
			"token_address": args[0],
			"commitment_id": id,
		})
	},
}

var eventsLimit int

var eventsByOfferCmd = &cobra.Command{
	Use:   "events_by_offer <offer_hash> [marker]",
	Short: "List recorded events for an offer",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{"offer_hash": args[0]}
		if len(args) > 1 {
			marker, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("marker: %w", err)
			}
			params["marker"] = marker
		}
		if eventsLimit > 0 {
			params["limit"] = eventsLimit
		}
		return executeMethod(cmd, "events_by_offer", params)
	},
}

var recentEventsCmd = &cobra.Command{
	Use:   "recent_events",
	Short: "List the most recent marketplace events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var params map[string]interface{}
		if eventsLimit > 0 {
			params = map[string]interface{}{"limit": eventsLimit}
		}
		return executeMethod(cmd, "recent_events", params)
	},
}

// callCmd covers methods without a dedicated command, such as the batch
// operations whose parameters are parallel arrays.
var callCmd = &cobra.Command{
	Use:   "call <method> [params-json]",
	Short: "Call any method with raw JSON parameters",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var params interface{}
		if len(args) > 1 {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("params: invalid JSON")
			}
			params = json.RawMessage(args[1])
		}
		return executeMethod(cmd, args[0], params)
	},
}

func init() {
	for _, c := range []*cobra.Command{eventsByOfferCmd, recentEventsCmd} {
		c.Flags().IntVar(&eventsLimit, "limit", 0, "maximum number of events (server default when 0)")
	}
}
