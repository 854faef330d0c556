package cli

import (
	"encoding/json"

	"github.com/LeJamon/goRentald/internal/crypto"
	"github.com/spf13/cobra"
)

var keygenSeed string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a secp256k1 key pair for signing requests",
	Long: `Generate a key pair and print the private key, public key and the
account id derived from it. With --seed the key is derived deterministically,
which is only suitable for local testing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var key *crypto.KeyPair
		if keygenSeed != "" {
			key = crypto.KeyFromSeed([]byte(keygenSeed))
		} else {
			var err error
			if key, err = crypto.GenerateKey(); err != nil {
				return err
			}
		}
		return printJSON(cmd, keyInfo(key))
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVar(&keygenSeed, "seed", "", "derive the key from this passphrase")
}

func keyInfo(key *crypto.KeyPair) map[string]interface{} {
	return map[string]interface{}{
		"private_key": key.PrivateKeyHex(),
		"public_key":  hexString(key.PublicKey()),
		"account":     key.AccountID().String(),
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
