package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"

	"github.com/emberforge/arcade-contract/rpc/vault"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	factoryHash := flag.String("factory", "", "LE hex script hash of the factory contract")
	vaultHash := flag.String("vault", "", "LE hex script hash of the vault contract")
	tradeHash := flag.String("trade", "", "LE hex script hash of the trade contract")
	auctionHash := flag.String("auction", "", "LE hex script hash of the auction contract")
	rentalHash := flag.String("rental", "", "LE hex script hash of the rental contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	case *vaultHash == "":
		log.Fatal("missing vault contract hash")
	}

	contracts := map[string]string{
		"factory": *factoryHash,
		"vault":   *vaultHash,
		"trade":   *tradeHash,
		"auction": *auctionHash,
		"rental":  *rentalHash,
	}

	rootDir := filepath.Join("testdata", *chainLabel)

	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, rootDir, contracts)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("contracts are successfully dumped to '%s/'\n", rootDir)
}

func _dump(neoBlockchainRPCEndpoint, rootDir string, contracts map[string]string) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	vaultAddr, err := parseHash(contracts["vault"])
	if err != nil {
		return fmt.Errorf("parse vault contract hash: %w", err)
	}

	version, err := vault.NewReader(b.actor, vaultAddr).Version()
	if err != nil {
		return fmt.Errorf("get vault contract version: %w", err)
	}

	log.Printf("dumping at block #%d, vault contract version %s\n", b.currentBlock, version)

	for name, hs := range contracts {
		if hs == "" {
			continue
		}

		log.Printf("Processing contract '%s'...\n", name)

		h, err := parseHash(hs)
		if err != nil {
			return fmt.Errorf("parse '%s' contract hash: %w", name, err)
		}

		err = dumpContractStorage(b, rootDir, name, h)
		if err != nil {
			return fmt.Errorf("dump '%s' contract storage: %w", name, err)
		}
	}

	return nil
}

// dumpContractStorage writes all storage items of the contract into
// <rootDir>/<name>.storage, one base58-encoded key-value pair per line.
func dumpContractStorage(b *remoteBlockchain, rootDir, name string, h util.Uint160) error {
	f, err := os.Create(filepath.Join(rootDir, name+".storage"))
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}

	defer f.Close()

	err = b.iterateContractStorage(h, func(key, value []byte) error {
		_, err := fmt.Fprintf(f, "%s %s\n", base58.Encode(key), base58.Encode(value))
		return err
	})
	if err != nil {
		return err
	}

	return f.Close()
}

func parseHash(s string) (util.Uint160, error) {
	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}
