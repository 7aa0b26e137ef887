package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"steamqueue/internal/catalog"
	"steamqueue/internal/logging"
	"steamqueue/internal/ratelimit"
	"steamqueue/internal/steam"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Software catalog utilities",
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh the software catalog from the store listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			limiter := ratelimit.New(cfg.RateLimitInterval())
			client, err := steam.New(cfg.Steam.APIKey, cfg.Steam.SteamID, limiter,
				steam.WithBaseURLs(cfg.API.StoreBaseURL, cfg.API.WebAPIBaseURL, cfg.API.CommunityBaseURL),
			)
			if err != nil {
				return err
			}

			fetcher := catalog.NewFetcher(client, catalog.NewStore(cfg.Files.SoftwareFile), logger)
			known, err := fetcher.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog holds %d identifiers (%s)\n", len(known), cfg.Files.SoftwareFile)
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show local catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info, err := os.Stat(cfg.Files.SoftwareFile)
			if os.IsNotExist(err) {
				fmt.Fprintf(out, "Catalog file %s does not exist yet; run `steamqueue catalog update`\n", cfg.Files.SoftwareFile)
				return nil
			}
			if err != nil {
				return err
			}

			lines, err := countLines(cfg.Files.SoftwareFile)
			if err != nil {
				return err
			}
			pairs := [][2]string{
				{"Path", cfg.Files.SoftwareFile},
				{"Identifiers", fmt.Sprintf("%d", lines)},
				{"Size", fmt.Sprintf("%d bytes", info.Size())},
				{"Modified", info.ModTime().Local().Format("2006-01-02 15:04:05")},
			}
			fmt.Fprintln(out, renderPairs("Catalog", "Value", pairs))
			return nil
		},
	}

	catalogCmd.AddCommand(updateCmd)
	catalogCmd.AddCommand(statsCmd)
	return catalogCmd
}

func countLines(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			count++
		}
	}
	return count, scanner.Err()
}
